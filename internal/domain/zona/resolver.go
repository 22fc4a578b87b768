// Package zona resuelve el tipo de envío de una dirección (provincia, cantón, distrito)
// a partir de una tabla estática incluida en el binario.
package zona

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
)

//go:embed data/zonas.json
var zonasJSON []byte

// Tabla provincia -> cantón -> distrito -> tipo de envío.
type Tabla map[string]map[string]map[string]string

// Resolver consulta la tabla de zonas con claves normalizadas. Es de solo lectura
// y seguro para uso concurrente.
type Resolver struct {
	tabla Tabla
}

var (
	defaultOnce     sync.Once
	defaultResolver *Resolver
	defaultErr      error
)

// Default devuelve el resolver construido con la tabla incluida en el binario.
// Se construye una sola vez por proceso.
func Default() (*Resolver, error) {
	defaultOnce.Do(func() {
		defaultResolver, defaultErr = Parse(zonasJSON)
	})
	return defaultResolver, defaultErr
}

// Parse construye un resolver desde el JSON de tres niveles.
func Parse(data []byte) (*Resolver, error) {
	var raw Tabla
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("zonas: parsear tabla: %w", err)
	}
	return New(raw)
}

// New normaliza las claves de la tabla. Dos claves que colisionan tras normalizar
// con distinto tipo de envío son un error de datos.
func New(raw Tabla) (*Resolver, error) {
	tabla := make(Tabla, len(raw))
	for prov, cantones := range raw {
		pk := Normalize(prov)
		if tabla[pk] == nil {
			tabla[pk] = make(map[string]map[string]string, len(cantones))
		}
		for canton, distritos := range cantones {
			ck := Normalize(canton)
			if tabla[pk][ck] == nil {
				tabla[pk][ck] = make(map[string]string, len(distritos))
			}
			for distrito, tipo := range distritos {
				dk := Normalize(distrito)
				if prev, ok := tabla[pk][ck][dk]; ok && prev != tipo {
					return nil, fmt.Errorf("zonas: %s/%s/%s duplicado con tipos %q y %q", pk, ck, dk, prev, tipo)
				}
				tabla[pk][ck][dk] = tipo
			}
		}
	}
	return &Resolver{tabla: tabla}, nil
}

// Resolve devuelve el tipo de envío exacto almacenado en la tabla.
// ok es false si falta cualquiera de los tres niveles.
func (r *Resolver) Resolve(provincia, canton, distrito string) (string, bool) {
	cantones, ok := r.tabla[Normalize(provincia)]
	if !ok {
		return "", false
	}
	distritos, ok := cantones[Normalize(canton)]
	if !ok {
		return "", false
	}
	tipo, ok := distritos[Normalize(distrito)]
	return tipo, ok
}

// Provincias lista las provincias (normalizadas) en orden alfabético.
func (r *Resolver) Provincias() []string {
	return sortedKeys(r.tabla)
}

// Cantones lista los cantones de una provincia; nil si la provincia no existe.
func (r *Resolver) Cantones(provincia string) []string {
	cantones, ok := r.tabla[Normalize(provincia)]
	if !ok {
		return nil
	}
	return sortedKeys(cantones)
}

// Distritos lista los distritos de un cantón; nil si no existe.
func (r *Resolver) Distritos(provincia, canton string) []string {
	cantones, ok := r.tabla[Normalize(provincia)]
	if !ok {
		return nil
	}
	distritos, ok := cantones[Normalize(canton)]
	if !ok {
		return nil
	}
	return sortedKeys(distritos)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
