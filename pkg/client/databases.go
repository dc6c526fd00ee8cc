package client

import (
	"context"

	"github.com/flyingsilverfin/grakn-client-go/pkg/graknerrors"
	"github.com/flyingsilverfin/grakn-client-go/pkg/protocol"
)

// DatabaseManager creates, lists and deletes databases.
type DatabaseManager struct {
	grakn protocol.GraknClient
}

// Contains returns whether a database with the name exists.
func (m *DatabaseManager) Contains(ctx context.Context, name string) (bool, error) {
	if name == "" {
		return false, graknerrors.MissingDatabaseName.New()
	}
	res, err := m.grakn.DatabasesContains(ctx, &protocol.DatabasesContainsReq{Name: name})
	if err != nil {
		return false, graknerrors.FromStatus(err)
	}
	return res.Contains, nil
}

func (m *DatabaseManager) Create(ctx context.Context, name string) error {
	if name == "" {
		return graknerrors.MissingDatabaseName.New()
	}
	_, err := m.grakn.DatabasesCreate(ctx, &protocol.DatabasesCreateReq{Name: name})
	return graknerrors.FromStatus(err)
}

// All returns the names of every database on the server.
func (m *DatabaseManager) All(ctx context.Context) ([]string, error) {
	res, err := m.grakn.DatabasesAll(ctx, &protocol.DatabasesAllReq{})
	if err != nil {
		return nil, graknerrors.FromStatus(err)
	}
	return res.Names, nil
}

// Delete deletes the database and everything in it.
func (m *DatabaseManager) Delete(ctx context.Context, name string) error {
	if name == "" {
		return graknerrors.MissingDatabaseName.New()
	}
	_, err := m.grakn.DatabaseDelete(ctx, &protocol.DatabaseDeleteReq{Name: name})
	return graknerrors.FromStatus(err)
}
