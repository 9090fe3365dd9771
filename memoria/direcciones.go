package memoria

// Pagina devuelve el número de página virtual de una dirección
func Pagina(direccion int, tamPagina int) int {
	return direccion / tamPagina
}

func Desplazamiento(direccion int, tamPagina int) int {
	return direccion % tamPagina
}

// PaginasNecesarias redondea el tamaño hacia arriba a páginas completas
func PaginasNecesarias(tamanio int, tamPagina int) int {
	return (tamanio + tamPagina - 1) / tamPagina
}

func Alineada(valor int, tamPagina int) bool {
	return valor%tamPagina == 0
}
