// Package render formats query results into the assistant's
// user-facing Ukrainian text.
package render

import (
	"fmt"
	"strings"

	"github.com/kirillkom/realty-assistant/internal/core/domain"
)

const placeholder = "-"

// Renderer turns a query result into response text. Select results
// render as numbered blocks with a fixed label set per collection;
// inserts render as acknowledgment sentences.
type Renderer struct{}

func NewRenderer() *Renderer { return &Renderer{} }

func (r *Renderer) Format(result domain.QueryResult) (string, error) {
	switch result.Operation {
	case domain.OpSelect:
		return r.formatSelect(result)
	case domain.OpInsert:
		return r.formatInsert(result)
	default:
		// Unreachable if dispatch did its job.
		return "", fmt.Errorf("render operation %q: %w", result.Operation, domain.ErrUnknownRenderTarget)
	}
}

func (r *Renderer) formatSelect(result domain.QueryResult) (string, error) {
	labels, err := selectLabels(result.Collection)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("Було знайдено наступні дані:\n\n")
	for i, record := range result.Records {
		fmt.Fprintf(&b, "%d.\n", i+1)
		for _, l := range labels {
			fmt.Fprintf(&b, "%s: %s\n", l.label, fieldText(record, l.field))
		}
		b.WriteString("\n")
	}
	return b.String(), nil
}

func (r *Renderer) formatInsert(result domain.QueryResult) (string, error) {
	switch result.Collection {
	case domain.CollectionRequests:
		// The customer never sees internal identifiers.
		return "Ваш запит було успішно опрацьовано! З вами зв'яжуться протягом робочого дня.\n", nil
	case domain.CollectionAppartments, domain.CollectionWorkers:
		return fmt.Sprintf(
			"Було успішно внесено запис у колекцію %s з ідентифікатором %s\n",
			result.Collection, result.InsertedID,
		), nil
	default:
		return "", fmt.Errorf("render insert into %q: %w", result.Collection, domain.ErrUnknownRenderTarget)
	}
}

type fieldLabel struct {
	label string
	field string
}

func selectLabels(collection domain.Collection) ([]fieldLabel, error) {
	switch collection {
	case domain.CollectionAppartments:
		return []fieldLabel{
			{"Адреса", "address"},
			{"Ціна", "price"},
			{"Опис", "description"},
			{"Рієлтор", "fullname"},
			{"Час публікації", "timestamp"},
		}, nil
	case domain.CollectionWorkers:
		return []fieldLabel{
			{"Рієлтор", "fullname"},
			{"Опис", "description"},
			{"Рейтинг", "level"},
		}, nil
	case domain.CollectionRequests:
		return []fieldLabel{
			{"Адреса", "address"},
			{"Ціна", "price"},
			{"Опис", "description"},
			{"Замовник", "fullname"},
			{"Час запиту", "timestamp"},
		}, nil
	default:
		return nil, fmt.Errorf("render select from %q: %w", collection, domain.ErrUnknownRenderTarget)
	}
}

// fieldText renders one stored value. Inserted documents keep bucket
// word lists as arrays, so string slices are joined back with spaces;
// anything absent or empty renders as the placeholder dash.
func fieldText(record domain.Record, field string) string {
	v, ok := record[field]
	if !ok || v == nil {
		return placeholder
	}
	switch val := v.(type) {
	case string:
		if val == "" {
			return placeholder
		}
		return val
	case []string:
		if len(val) == 0 {
			return placeholder
		}
		return strings.Join(val, " ")
	case []any:
		if len(val) == 0 {
			return placeholder
		}
		parts := make([]string, 0, len(val))
		for _, item := range val {
			parts = append(parts, fmt.Sprintf("%v", item))
		}
		return strings.Join(parts, " ")
	default:
		return fmt.Sprintf("%v", val)
	}
}
