package memoria

// MemoriaFisica es el espacio de usuario contiguo dividido en marcos de tamPagina bytes
type MemoriaFisica struct {
	datos     []byte
	tamPagina int
}

func NewMemoriaFisica(tamMemoria int, tamPagina int) *MemoriaFisica {
	return &MemoriaFisica{
		datos:     make([]byte, tamMemoria),
		tamPagina: tamPagina,
	}
}

func (m *MemoriaFisica) LeerByte(marco int, desplazamiento int) byte {
	return m.datos[marco*m.tamPagina+desplazamiento]
}

func (m *MemoriaFisica) EscribirByte(marco int, desplazamiento int, valor byte) {
	m.datos[marco*m.tamPagina+desplazamiento] = valor
}

// LeerPagina devuelve una copia del contenido del marco
func (m *MemoriaFisica) LeerPagina(marco int) []byte {
	pagina := make([]byte, m.tamPagina)
	copy(pagina, m.pagina(marco))
	return pagina
}

func (m *MemoriaFisica) EscribirPagina(marco int, contenido []byte) {
	copy(m.pagina(marco), contenido)
}

// LimpiarPagina pone el marco en ceros
func (m *MemoriaFisica) LimpiarPagina(marco int) {
	clear(m.pagina(marco))
}

func (m *MemoriaFisica) pagina(marco int) []byte {
	inicio := marco * m.tamPagina
	return m.datos[inicio : inicio+m.tamPagina]
}
