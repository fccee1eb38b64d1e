package rest

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	filter "github.com/Seantoni/os-deal-booking-sub005/advfilter/filter/domain"
	"github.com/Seantoni/os-deal-booking-sub005/advfilter/filter/domain/catalog"
	"github.com/Seantoni/os-deal-booking-sub005/advfilter/filter/domain/datepreset"
	"github.com/Seantoni/os-deal-booking-sub005/advfilter/filter/domain/rule"
	filterinfra "github.com/Seantoni/os-deal-booking-sub005/advfilter/filter/infrastructure"
)

type fieldView struct {
	catalog.FieldDefinition
	Operators []catalog.OperatorInfo `json:"operators"`
}

type presetView struct {
	datepreset.Preset
	Date time.Time `json:"date"`
}

type applyRequest struct {
	Records []map[string]any `json:"records" validate:"required"`
	// Rules is either a JSON-encoded string or an array of rule objects.
	Rules  any    `json:"rules"`
	Entity string `json:"entity"`
}

func (s *Server) listEntities(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"entities": s.catalog.Entities(),
	})
}

func (s *Server) listFields(c echo.Context) error {
	entity := c.Param("entity")
	fields := s.catalog.Fields(entity)
	if fields == nil {
		return echo.NewHTTPError(http.StatusNotFound, fmt.Sprintf("unknown entity %q", entity))
	}
	views := make([]fieldView, 0, len(fields))
	for _, field := range fields {
		views = append(views, fieldView{FieldDefinition: field, Operators: field.Operators()})
	}
	return c.JSON(http.StatusOK, map[string]any{
		"entity": entity,
		"fields": views,
	})
}

func (s *Server) listOperators(c echo.Context) error {
	fieldType := catalog.FieldType(c.QueryParam("type"))
	if !fieldType.IsValid() {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("unknown field type %q", fieldType))
	}
	return c.JSON(http.StatusOK, map[string]any{
		"type":      fieldType,
		"operators": catalog.OperatorsFor(fieldType),
	})
}

func (s *Server) listPresets(c echo.Context) error {
	now := s.now()
	presets := datepreset.Presets()
	views := make([]presetView, 0, len(presets))
	for _, p := range presets {
		views = append(views, presetView{Preset: p, Date: datepreset.Resolve(p.Token, now).Time()})
	}
	return c.JSON(http.StatusOK, map[string]any{
		"presets": views,
	})
}

// buildWhere compiles the rules query parameter. Malformed rules mean no
// rules, so the response is then the empty predicate.
func (s *Server) buildWhere(c echo.Context) error {
	rules := rule.Parse(c.QueryParam("rules"))
	if err := s.checkRules(c.QueryParam("entity"), rules); err != nil {
		return err
	}

	logger := s.requestLogger(c)
	compiler := filterinfra.NewCompiler(
		filterinfra.WithNow(s.now),
		filterinfra.WithDropObserver(func(d filterinfra.DroppedRule) {
			logger.Debug("rule dropped from predicate", "index", d.Index, "field", d.Rule.Field, "operator", d.Rule.Operator, "reason", d.Reason)
		}),
	)
	where := compiler.BuildWhere(rules)
	if where.HasNaN() {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "a comparison value is not a number")
	}
	return c.JSON(http.StatusOK, map[string]any{
		"where": where,
	})
}

func (s *Server) applyFilters(c echo.Context) error {
	var req applyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "failed to decode request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	rules := rule.DecodeAny(req.Rules)
	if err := s.checkRules(req.Entity, rules); err != nil {
		return err
	}

	records := filter.Apply(s.evaluator, req.Records, rules)
	return c.JSON(http.StatusOK, map[string]any{
		"records": records,
		"count":   len(records),
		"total":   len(req.Records),
	})
}

// checkRules is a no-op without an entity.
func (s *Server) checkRules(entity string, rules []rule.Rule) error {
	if entity == "" {
		return nil
	}
	if err := s.catalog.CheckRules(entity, rules); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}
