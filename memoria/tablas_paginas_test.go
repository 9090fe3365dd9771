package memoria

import "testing"

func TestBuscarRangoLibrePrimerAjuste(t *testing.T) {
	tabla := NewTablaPaginas(10)
	tabla.Reservar(0, 2)
	tabla.Reservar(4, 1)

	specs := []struct {
		nombre   string
		paginas  int
		inicio   int
		encontro bool
	}{
		{"entra en el primer hueco", 2, 2, true},
		{"no entra en el primer hueco", 3, 5, true},
		{"hueco final completo", 5, 5, true},
		{"más grande que cualquier hueco", 6, -1, false},
		{"cero páginas", 0, -1, false},
	}

	for _, spec := range specs {
		inicio, ok := tabla.BuscarRangoLibre(spec.paginas)
		if ok != spec.encontro || inicio != spec.inicio {
			t.Errorf("[%s] Expected (%d, %v), got (%d, %v)", spec.nombre, spec.inicio, spec.encontro, inicio, ok)
		}
	}
}

func TestQuitarDejaLaPaginaComoNuncaAsignada(t *testing.T) {
	tabla := NewTablaPaginas(4)
	tabla.Reservar(1, 2)
	tabla.Entrada(1).Marco = 7

	quitada := tabla.Quitar(1)
	if quitada == nil || quitada.Marco != 7 {
		t.Fatalf("Expected removed entry with frame 7, got %+v", quitada)
	}
	tabla.Quitar(2)

	if tabla.Entrada(1) != nil || tabla.Asignadas() != 0 {
		t.Errorf("Expected table to be empty after removal")
	}
	if inicio, ok := tabla.BuscarRangoLibre(4); !ok || inicio != 0 {
		t.Errorf("Expected whole table to be free again, got (%d, %v)", inicio, ok)
	}
}

func TestPrimeraResidenteYMarcos(t *testing.T) {
	tabla := NewTablaPaginas(6)
	tabla.Reservar(0, 6)

	if _, _, ok := tabla.PrimeraResidente(); ok {
		t.Fatalf("Expected no resident pages in a lazy table")
	}

	tabla.Entrada(4).Marco = 10
	tabla.Entrada(2).Marco = 11

	pagina, entrada, ok := tabla.PrimeraResidente()
	if !ok || pagina != 2 || entrada.Marco != 11 {
		t.Errorf("Expected page 2 on frame 11, got page %d (%v)", pagina, ok)
	}

	marcos := tabla.MarcosResidentes()
	if len(marcos) != 2 || marcos[0] != 11 || marcos[1] != 10 {
		t.Errorf("Expected frames [11 10], got %v", marcos)
	}
}

func TestDirecciones(t *testing.T) {
	if PaginasNecesarias(1, 1024) != 1 || PaginasNecesarias(1024, 1024) != 1 || PaginasNecesarias(1025, 1024) != 2 {
		t.Errorf("Unexpected page rounding")
	}
	if Pagina(2050, 1024) != 2 || Desplazamiento(2050, 1024) != 2 {
		t.Errorf("Unexpected page split for 2050")
	}
	if !Alineada(2048, 1024) || Alineada(100, 1024) {
		t.Errorf("Unexpected alignment result")
	}
}
