package ses

import (
	"fmt"
	"net/url"
	"reflect"
	"strconv"
	"strings"
)

// ListParams pages through plain list endpoints. The backend defaults to
// skip=0, limit=100.
type ListParams struct {
	Skip  int `query:"skip"`
	Limit int `query:"limit"`
}

type EmployeeSearchParams struct {
	SkillTags          []string             `query:"skill_tags,comma"`
	YearsExperienceMin int                  `query:"years_experience_min"`
	YearsExperienceMax int                  `query:"years_experience_max"`
	AvailabilityStatus []AvailabilityStatus `query:"availability_status,comma"`
	UnitPriceMin       int                  `query:"unit_price_min"`
	UnitPriceMax       int                  `query:"unit_price_max"`
}

type SkillListParams struct {
	Skip     int    `query:"skip"`
	Limit    int    `query:"limit"`
	Category string `query:"category"`
}

type ProjectListParams struct {
	Skip       int `query:"skip"`
	Limit      int `query:"limit"`
	EmployeeID int `query:"employee_id"`
}

type OneOnOneListParams struct {
	Skip       int `query:"skip"`
	Limit      int `query:"limit"`
	EmployeeID int `query:"employee_id"`
	Year       int `query:"year"`
	Month      int `query:"month"`
}

// CompletionRateParams selects the month to report. Zero values fall back to
// the current month on the backend.
type CompletionRateParams struct {
	Year  int `query:"year"`
	Month int `query:"month"`
}

// buildQuery turns a pointer to a params struct into url values using the
// query tag. Zero values are skipped. A ",comma" tag option joins slices
// into one comma separated value instead of repeating the key.
func buildQuery(params any) url.Values {
	q := url.Values{}
	if params == nil {
		return q
	}

	value := reflect.ValueOf(params)
	if value.Kind() == reflect.Pointer {
		if value.IsNil() {
			return q
		}
		value = value.Elem()
	}
	if value.Kind() != reflect.Struct {
		return q
	}

	for _, field := range reflect.VisibleFields(value.Type()) {
		tag := field.Tag.Get("query")
		if tag == "" || tag == "-" {
			continue
		}

		key, option, _ := strings.Cut(tag, ",")
		fieldValue := value.FieldByIndex(field.Index)

		if fieldValue.Kind() == reflect.Slice {
			values := make([]string, 0, fieldValue.Len())
			for i := 0; i < fieldValue.Len(); i++ {
				if s := formatValue(fieldValue.Index(i)); s != "" {
					values = append(values, s)
				}
			}
			if len(values) == 0 {
				continue
			}
			if option == "comma" {
				q.Set(key, strings.Join(values, ","))
				continue
			}
			for _, v := range values {
				q.Add(key, v)
			}
			continue
		}

		if s := formatValue(fieldValue); s != "" {
			q.Set(key, s)
		}
	}

	return q
}

func formatValue(v reflect.Value) string {
	if v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return ""
		}
		v = v.Elem()
	}

	switch v.Kind() {
	case reflect.String:
		return strings.TrimSpace(v.String())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if v.Int() == 0 {
			return ""
		}
		return strconv.FormatInt(v.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if v.Uint() == 0 {
			return ""
		}
		return strconv.FormatUint(v.Uint(), 10)
	case reflect.Bool:
		if !v.Bool() {
			return ""
		}
		return "true"
	default:
		s := fmt.Sprintf("%v", v.Interface())
		if s == "0" {
			return ""
		}
		return s
	}
}
