package aircraft

import (
	aircraftDatamodel "github.com/frahmantamala/airline-admin/internal/core/datamodel/aircraft"
)

type Aircraft struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Livery    string `json:"livery"`
	CreatedAt int64  `json:"created_at"`
}

func FromDataModel(a *aircraftDatamodel.Aircraft) *Aircraft {
	return &Aircraft{
		ID:        a.ID,
		Name:      a.Name,
		Livery:    a.Livery,
		CreatedAt: a.CreatedAt,
	}
}
