package repository

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/gocql/gocql"
	"github.com/shopspring/decimal"
	"gopkg.in/inf.v0"

	"mars_shop/internal/apperr"
	"mars_shop/internal/database"
)

// NewScylla construit les dépôts sur les keyspaces "products", "users" et "orders".
func NewScylla(sm *database.ScyllaManager) (Repositories, error) {
	products, err := sm.Session("products")
	if err != nil {
		return Repositories{}, err
	}
	users, err := sm.Session("users")
	if err != nil {
		return Repositories{}, err
	}
	orders, err := sm.Session("orders")
	if err != nil {
		return Repositories{}, err
	}
	return Repositories{
		Products:   &ScyllaProducts{session: products},
		Categories: &ScyllaCategories{session: products},
		Orders:     &ScyllaOrders{session: orders},
		Users:      &ScyllaUsers{session: users},
	}, nil
}

func toDec(d decimal.Decimal) *inf.Dec {
	return inf.NewDecBig(d.Coefficient(), inf.Scale(-d.Exponent()))
}

func fromDec(x *inf.Dec) decimal.Decimal {
	if x == nil {
		return decimal.Zero
	}
	return decimal.NewFromBigInt(x.UnscaledBig(), -int32(x.Scale()))
}

// scyllaErr traduit ErrNotFound ; toute autre erreur du driver est transitoire.
func scyllaErr(op string, err error, notFound func() error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gocql.ErrNotFound) && notFound != nil {
		return notFound()
	}
	return apperr.Transient(op, err)
}

// Les sous-structures (couleurs, tailles, lignes de commande) sont stockées en JSON texte.
func toJSON(v any) (string, error) {
	if v == nil {
		return "", nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("encodage JSON: %w", err)
	}
	return string(b), nil
}

func fromJSON(s string, v any) error {
	if s == "" || s == "null" {
		return nil
	}
	if err := json.Unmarshal([]byte(s), v); err != nil {
		return fmt.Errorf("décodage JSON: %w", err)
	}
	return nil
}
