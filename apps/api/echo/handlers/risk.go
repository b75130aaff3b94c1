package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/eduwatch/eduwatch/core"
	"github.com/eduwatch/eduwatch/core/risk"
	"github.com/eduwatch/eduwatch/core/student"
)

type riskApi struct {
	students *student.Service
	engine   *risk.Engine
}

func RegisterRiskAPI(g *echo.Group, students *student.Service, engine *risk.Engine) {
	api := riskApi{students: students, engine: engine}

	sg := g.Group("/students")
	sg.GET("/at-risk", api.studentsAtRisk)

	dg := sg.Group("/:id")
	dg.GET("/risk", api.studentRisk)
	dg.GET("/risk/factors", api.studentRiskFactors)
	dg.GET("/alerts", api.studentAlerts)
}

// Handlers

func (api *riskApi) studentRisk(ctx echo.Context) error {
	stu, err := api.students.GetByID(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return err
	}

	assessment, err := api.engine.Assess(ctx.Request().Context(), stu.ID)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, assessment)
}

func (api *riskApi) studentRiskFactors(ctx echo.Context) error {
	stu, err := api.students.GetByID(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return err
	}

	factors, err := api.engine.AssessFactors(ctx.Request().Context(), stu.ID)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, factors)
}

func (api *riskApi) studentAlerts(ctx echo.Context) error {
	stu, err := api.students.GetByID(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return err
	}

	assessment, err := api.engine.Assess(ctx.Request().Context(), stu.ID)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, risk.BuildAlerts(assessment))
}

type atRiskStudent struct {
	Student    student.Student `json:"student"`
	Assessment risk.Assessment `json:"assessment"`
}

// studentsAtRisk lists all students whose aggregate level is at or above the
// requested one (default: medium).
func (api *riskApi) studentsAtRisk(ctx echo.Context) error {
	minLevel := risk.Level(ctx.QueryParam("level"))
	if minLevel == "" {
		minLevel = risk.LevelMedium
	}
	rank, ok := levelRanks[minLevel]
	if !ok {
		err := errors.New("unknown risk level")
		return core.NewValidationError(err, core.FieldError{Field: "level", Error: err.Error()})
	}

	students, err := api.students.QueryAll(ctx.Request().Context())
	if err != nil {
		return err
	}

	res := make([]atRiskStudent, 0)
	for _, stu := range students {
		assessment, err := api.engine.Assess(ctx.Request().Context(), stu.ID)
		if err != nil {
			return err
		}
		if levelRanks[assessment.Level] >= rank {
			res = append(res, atRiskStudent{Student: stu, Assessment: assessment})
		}
	}
	return ctx.JSON(http.StatusOK, res)
}

var levelRanks = map[risk.Level]int{
	risk.LevelLow:      0,
	risk.LevelMedium:   1,
	risk.LevelHigh:     2,
	risk.LevelCritical: 3,
}
