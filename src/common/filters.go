package common

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"travelhub/src/config"
	"travelhub/src/types"

	"github.com/gin-gonic/gin"
	"github.com/tidwall/gjson"
	"gorm.io/gorm"
)

// FilterParams maps a filter key to its raw value.
type FilterParams map[string]string

func FilterParamsFromQuery(ctx *gin.Context) FilterParams {
	params := FilterParams{}
	for key, values := range ctx.Request.URL.Query() {
		if len(values) > 0 {
			params[key] = values[0]
		}
	}
	return params
}

// FilterParamsFromJSON flattens a JSON object of scalar values.
func FilterParamsFromJSON(raw gjson.Result) FilterParams {
	params := FilterParams{}
	if !raw.IsObject() {
		return params
	}
	raw.ForEach(func(key, value gjson.Result) bool {
		switch value.Type {
		case gjson.Null:
		case gjson.String:
			params[key.String()] = value.String()
		default:
			params[key.String()] = value.Raw
		}
		return true
	})
	return params
}

type FilterKind int

const (
	FILTER_CONTAINS FilterKind = iota
	FILTER_EXACT
	FILTER_UINT
	FILTER_BOOL
	FILTER_MIN
	FILTER_MAX
	FILTER_DATE
)

type Filter struct {
	Param  string
	Column string
	Kind   FilterKind
}

type ListSpec struct {
	Filters      []Filter
	Search       []string
	Ordering     []string
	DefaultOrder string
	ActiveOnly   bool
}

var PropertyListSpec = ListSpec{
	Filters: []Filter{
		{"city", "city", FILTER_CONTAINS},
		{"state", "state", FILTER_CONTAINS},
		{"type", "type", FILTER_EXACT},
		{"max_guests", "max_guests", FILTER_UINT},
		{"instant_book", "instant_book", FILTER_BOOL},
		{"min_price", "price_per_night", FILTER_MIN},
		{"max_price", "price_per_night", FILTER_MAX},
		{"min_rating", "rating", FILTER_MIN},
	},
	Search:       []string{"name", "location", "description"},
	Ordering:     []string{"price_per_night", "rating", "created_at"},
	DefaultOrder: "id",
	ActiveOnly:   true,
}

var BusListSpec = ListSpec{
	Filters: []Filter{
		{"from_city", "from_city", FILTER_CONTAINS},
		{"to_city", "to_city", FILTER_CONTAINS},
		{"seat_type", "seat_type", FILTER_EXACT},
		{"operator", "operator_id", FILTER_UINT},
		{"date", "departure_time", FILTER_DATE},
		{"min_price", "base_fare", FILTER_MIN},
		{"max_price", "base_fare", FILTER_MAX},
	},
	Search:       []string{"bus_number", "bus_type"},
	Ordering:     []string{"departure_time", "base_fare", "rating"},
	DefaultOrder: "id",
}

var TrainListSpec = ListSpec{
	Filters: []Filter{
		{"from_station", "from_station", FILTER_CONTAINS},
		{"to_station", "to_station", FILTER_CONTAINS},
		{"classes_available", "classes_available", FILTER_EXACT},
		{"min_price", "base_fare", FILTER_MIN},
		{"max_price", "base_fare", FILTER_MAX},
	},
	Search:       []string{"number", "name"},
	Ordering:     []string{"departure_time", "base_fare"},
	DefaultOrder: "departure_time",
}

var HomestayListSpec = ListSpec{
	Filters: []Filter{
		{"city", "city", FILTER_CONTAINS},
		{"country", "country", FILTER_CONTAINS},
		{"host", "host_id", FILTER_UINT},
		{"min_price", "price_per_night", FILTER_MIN},
		{"max_price", "price_per_night", FILTER_MAX},
	},
	Search:       []string{"name", "description", "address"},
	Ordering:     []string{"price_per_night", "rating", "created_at"},
	DefaultOrder: "id",
	ActiveOnly:   true,
}

var BusOperatorListSpec = ListSpec{
	Search:       []string{"name", "description"},
	Ordering:     []string{"rating", "total_buses"},
	DefaultOrder: "id",
}

var likeEscaper = strings.NewReplacer("\\", "\\\\", "%", "\\%", "_", "\\_")

// likeClause matches col case-insensitively as a literal substring.
const likeClause = "LOWER(%s) LIKE ? ESCAPE '\\'"

func likePattern(v string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(v)) + "%"
}

// ApplyFilters adds the predicates and ordering described by list. Empty or
// unknown keys are ignored; malformed values fail with a field-level error.
func ApplyFilters(tx *gorm.DB, list ListSpec, params FilterParams) (*gorm.DB, error) {
	fields := map[string]string{}
	if list.ActiveOnly {
		tx = tx.Where("is_active = ?", true)
	}
	for _, f := range list.Filters {
		raw := strings.TrimSpace(params[f.Param])
		if raw == "" {
			continue
		}
		switch f.Kind {
		case FILTER_CONTAINS:
			tx = tx.Where(fmt.Sprintf(likeClause, f.Column), likePattern(raw))
		case FILTER_EXACT:
			tx = tx.Where(fmt.Sprintf("%s = ?", f.Column), raw)
		case FILTER_UINT:
			v, err := strconv.ParseUint(raw, 10, 64)
			if err != nil {
				fields[f.Param] = "must be a whole number"
				continue
			}
			tx = tx.Where(fmt.Sprintf("%s = ?", f.Column), v)
		case FILTER_BOOL:
			v, err := strconv.ParseBool(raw)
			if err != nil {
				fields[f.Param] = "must be true or false"
				continue
			}
			tx = tx.Where(fmt.Sprintf("%s = ?", f.Column), v)
		case FILTER_MIN, FILTER_MAX:
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				fields[f.Param] = "must be a number"
				continue
			}
			op := ">="
			if f.Kind == FILTER_MAX {
				op = "<="
			}
			tx = tx.Where(fmt.Sprintf("%s %s ?", f.Column, op), v)
		case FILTER_DATE:
			day, err := time.ParseInLocation(config.DATE_FORMAT, raw, time.UTC)
			if err != nil {
				fields[f.Param] = "must be a date in YYYY-MM-DD format"
				continue
			}
			tx = tx.Where(fmt.Sprintf("%s >= ? AND %s < ?", f.Column, f.Column), day, day.Add(24*time.Hour))
		}
	}

	if term := strings.TrimSpace(params["search"]); term != "" && len(list.Search) > 0 {
		clauses := make([]string, 0, len(list.Search))
		args := make([]any, 0, len(list.Search))
		for _, col := range list.Search {
			clauses = append(clauses, fmt.Sprintf(likeClause, col))
			args = append(args, likePattern(term))
		}
		tx = tx.Where("("+strings.Join(clauses, " OR ")+")", args...)
	}

	orders, err := parseOrdering(params["ordering"], list.Ordering)
	if err != nil {
		fields["ordering"] = err.Error()
	}
	if len(fields) > 0 {
		return nil, types.NewValidationError(fields)
	}
	for _, o := range orders {
		tx = tx.Order(o)
	}
	if list.DefaultOrder != "" {
		tx = tx.Order(list.DefaultOrder)
	}
	return tx, nil
}

func parseOrdering(raw string, allowed []string) ([]string, error) {
	var orders []string
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		dir := "ASC"
		field := part
		if strings.HasPrefix(part, "-") {
			dir = "DESC"
			field = part[1:]
		}
		ok := false
		for _, a := range allowed {
			if a == field {
				ok = true
				break
			}
		}
		if !ok {
			return nil, fmt.Errorf("cannot order by %q", field)
		}
		orders = append(orders, fmt.Sprintf("%s %s", field, dir))
	}
	return orders, nil
}
