package store

import (
	"github.com/WanderingWalnut/Grantly/core/db"
)

type Stores struct {
	conn db.DBTX
}

func NewStores(conn db.DBTX) *Stores {
	return &Stores{conn: conn}
}

func (s *Stores) Organizations() OrganizationStore {
	return newOrganizationStore(s.conn)
}
