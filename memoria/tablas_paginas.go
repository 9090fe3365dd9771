package memoria

const (
	SinMarco = -1
	SinDisco = -1
)

// EntradaTabla representa una página virtual en uso.
// Con Marco y PaginaDisco en -1 la página está asignada pero nunca fue tocada.
type EntradaTabla struct {
	Marco        int    // Marco físico si la página está residente
	PaginaDisco  int    // Slot de swap donde se guardó por última vez
	UltimoAcceso uint64 // Tick del kernel en la última traducción
}

func (e *EntradaTabla) Residente() bool {
	return e.Marco != SinMarco
}

// TablaPaginas es la tabla de un nivel de un proceso. Un slot nil es una página sin asignar.
type TablaPaginas struct {
	entradas []*EntradaTabla
}

func NewTablaPaginas(paginas int) *TablaPaginas {
	return &TablaPaginas{entradas: make([]*EntradaTabla, paginas)}
}

func (t *TablaPaginas) Cantidad() int {
	return len(t.entradas)
}

// Entrada devuelve nil si la página está fuera de rango o sin asignar
func (t *TablaPaginas) Entrada(pagina int) *EntradaTabla {
	if pagina < 0 || pagina >= len(t.entradas) {
		return nil
	}
	return t.entradas[pagina]
}

// BuscarRangoLibre devuelve la primera corrida de n páginas consecutivas sin asignar
func (t *TablaPaginas) BuscarRangoLibre(n int) (int, bool) {
	if n <= 0 {
		return -1, false
	}
	consecutivas := 0
	for i, entrada := range t.entradas {
		if entrada != nil {
			consecutivas = 0
			continue
		}
		consecutivas++
		if consecutivas == n {
			return i - n + 1, true
		}
	}
	return -1, false
}

// Reservar marca n páginas desde inicio como asignadas sin marco ni disco
func (t *TablaPaginas) Reservar(inicio int, n int) {
	for i := inicio; i < inicio+n; i++ {
		t.entradas[i] = &EntradaTabla{Marco: SinMarco, PaginaDisco: SinDisco}
	}
}

// Quitar borra la entrada y devuelve la anterior, o nil si no había
func (t *TablaPaginas) Quitar(pagina int) *EntradaTabla {
	entrada := t.Entrada(pagina)
	if entrada != nil {
		t.entradas[pagina] = nil
	}
	return entrada
}

// PrimeraResidente devuelve la página residente de menor número
func (t *TablaPaginas) PrimeraResidente() (int, *EntradaTabla, bool) {
	for i, entrada := range t.entradas {
		if entrada != nil && entrada.Residente() {
			return i, entrada, true
		}
	}
	return -1, nil, false
}

// MarcosResidentes lista los marcos que ocupa la tabla
func (t *TablaPaginas) MarcosResidentes() []int {
	var marcos []int
	for _, entrada := range t.entradas {
		if entrada != nil && entrada.Residente() {
			marcos = append(marcos, entrada.Marco)
		}
	}
	return marcos
}

// Asignadas cuenta las páginas en uso, residentes o no
func (t *TablaPaginas) Asignadas() int {
	cantidad := 0
	for _, entrada := range t.entradas {
		if entrada != nil {
			cantidad++
		}
	}
	return cantidad
}
