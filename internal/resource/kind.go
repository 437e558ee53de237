package resource

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"go-clinic-dashboard/internal/domain/entity"
	"go-clinic-dashboard/pkg/display"

	"github.com/shopspring/decimal"
)

// Reference declares a draft field that must name an entry of a loaded
// reference collection at submit time.
type Reference struct {
	Field      string
	Collection string
	Multiple   bool
	Optional   bool
}

// DateTimeField describes a timestamp that the form edits as separate date
// and time inputs. TimeField is empty for date-only values.
type DateTimeField struct {
	Field     string
	DateField string
	TimeField string
}

// Derivation recomputes dependent draft fields after any of Triggers is set.
type Derivation struct {
	Triggers []string
	Apply    func(d Draft, refs Catalogs)
}

// Kind configures one resource screen. A single Screen implementation is
// instantiated per Kind.
type Kind[T any] struct {
	Name             string
	Label            string
	Path             string
	PageSize         int
	ViewPermission   string
	ManagePermission string
	// Query is sent with every collection fetch, e.g. ordering.
	Query url.Values
	// Collections maps reference collection names to upstream paths.
	Collections map[string]string

	ID         func(T) entity.ID
	Searchable func(T) []string
	Category   func(T) string
	Date       func(T) string
	// Less orders the filtered list. Date comparisons read values in loc.
	Less       func(a, b T, loc *time.Location) bool
	Status     func(T) string
	Statuses   []string
	Badges     map[string]display.Variant
	// Amount, when set, is rendered as a currency column in Currency.
	Amount   func(T) decimal.Decimal
	Currency string

	NewForm     func() interface{}
	Defaults    map[string]interface{}
	DateTimes   []DateTimeField
	Numeric     []string
	ClientOnly  []string
	References  []Reference
	Derivations []Derivation

	// StatusField is the record attribute SetStatus changes; empty disables it.
	StatusField string
	// StatusAction, when set, routes status changes through POST {id}/{action}/.
	StatusAction  string
	Deactivatable bool
}

var ErrInvalidKind = errors.New("resource: invalid kind configuration")

func (k *Kind[T]) check() error {
	switch {
	case k.Name == "" || k.Path == "":
		return fmt.Errorf("%w: name and path are required", ErrInvalidKind)
	case k.ID == nil || k.Searchable == nil || k.Less == nil:
		return fmt.Errorf("%w: %s needs ID, Searchable and Less", ErrInvalidKind, k.Name)
	case k.NewForm == nil:
		return fmt.Errorf("%w: %s has no form", ErrInvalidKind, k.Name)
	case k.PageSize <= 0:
		return fmt.Errorf("%w: %s page size must be positive", ErrInvalidKind, k.Name)
	}
	for _, ref := range k.References {
		if _, ok := k.Collections[ref.Collection]; !ok {
			return fmt.Errorf("%w: %s references unknown collection %s", ErrInvalidKind, k.Name, ref.Collection)
		}
	}
	return nil
}

func (k *Kind[T]) label() string {
	if k.Label != "" {
		return k.Label
	}
	return k.Name
}

func (k *Kind[T]) currency() string {
	if k.Currency != "" {
		return k.Currency
	}
	return display.DefaultCurrencySymbol
}

func (k *Kind[T]) badge(status string) display.Variant {
	return display.StatusBadgeColor(k.Badges, status)
}

func (k *Kind[T]) validStatus(status string) bool {
	for _, s := range k.Statuses {
		if s == status {
			return true
		}
	}
	return false
}

// CopyFromCatalog fills draft fields from the catalog entry selected in
// field. fill maps draft keys to entry attributes: name, price, duration or
// category. Clearing the selection leaves the copied values alone.
func CopyFromCatalog(field, collection string, fill map[string]string) Derivation {
	return Derivation{
		Triggers: []string{field},
		Apply: func(d Draft, refs Catalogs) {
			entry, ok := refs.Lookup(collection, entity.ID(d.String(field)))
			if !ok {
				return
			}
			for key, attr := range fill {
				switch attr {
				case "name":
					d[key] = entry.Name
				case "price":
					d[key] = numberValue(entry.Price.String())
				case "duration":
					d[key] = numberValue(strconv.Itoa(entry.Duration))
				case "category":
					d[key] = entry.Category
				}
			}
		},
	}
}
