package memoria

// MetricasProceso almacena estadísticas sobre el uso de memoria de un proceso
type MetricasProceso struct {
	AccesosTablasPaginas int `json:"accesos_tablas_paginas"`
	FallosPagina         int `json:"fallos_pagina"`
	BajadasSwap          int `json:"bajadas_swap"`
	SubidasMemoria       int `json:"subidas_memoria"`
	LecturasMemoria      int `json:"lecturas_memoria"`
	EscriturasMemoria    int `json:"escrituras_memoria"`
	AciertosTLB          int `json:"aciertos_tlb"`
	FallosTLB            int `json:"fallos_tlb"`
}

// LogArgs devuelve las métricas como pares clave/valor para slog
func (m MetricasProceso) LogArgs() []any {
	return []any{
		"accesos_tablas", m.AccesosTablasPaginas,
		"fallos_pagina", m.FallosPagina,
		"bajadas_swap", m.BajadasSwap,
		"subidas_memoria", m.SubidasMemoria,
		"lecturas", m.LecturasMemoria,
		"escrituras", m.EscriturasMemoria,
		"aciertos_tlb", m.AciertosTLB,
		"fallos_tlb", m.FallosTLB,
	}
}
