package usecase

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// normalizePage aplica los límites de paginación: limit en [1, 100] (20 por defecto), offset >= 0.
func normalizePage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
