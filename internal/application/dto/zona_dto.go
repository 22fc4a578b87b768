package dto

// TipoEnvioResponse resultado de resolver una zona.
type TipoEnvioResponse struct {
	Provincia string `json:"provincia"`
	Canton    string `json:"canton"`
	Distrito  string `json:"distrito"`
	TipoEnvio string `json:"tipo_envio"`
}

// ZonaListResponse listado de claves de un nivel de la tabla de zonas.
type ZonaListResponse struct {
	Items []string `json:"items"`
}
