package handler // handler defines the HTTP handlers of the hall plan API

import (
    "errors"
    "fmt"
    "net/http"
    "strconv"
    "strings"

    "github.com/go-playground/validator/v10"
    "github.com/labstack/echo/v4"

    "github.com/iliyamo/exam-hall-seating/internal/model"
)

var validate = validator.New()

// bindAndValidate binds the JSON body into dst and runs its validate tags.
// It returns the 400 response body on failure and nil otherwise.
func bindAndValidate(c echo.Context, dst interface{}) map[string]any {
    if err := c.Bind(dst); err != nil {
        return map[string]any{"error": "invalid request body"}
    }
    if err := validate.Struct(dst); err != nil {
        return map[string]any{"error": "validation failed", "fields": validationFields(err)}
    }
    return nil
}

// validationFields flattens validator errors into "field: tag" strings.
func validationFields(err error) []string {
    var ve validator.ValidationErrors
    if !errors.As(err, &ve) {
        return []string{err.Error()}
    }
    out := make([]string, 0, len(ve))
    for _, fe := range ve {
        ns := fe.Namespace()
        if i := strings.IndexByte(ns, '.'); i >= 0 {
            ns = ns[i+1:]
        }
        out = append(out, fmt.Sprintf("%s: %s", ns, fe.Tag()))
    }
    return out
}

// sessionQuery reads ?date=YYYY-MM-DD&slot=N.  Both are required.
func sessionQuery(c echo.Context) (model.Session, error) {
    slot, err := strconv.ParseUint(c.QueryParam("slot"), 10, 8)
    if err != nil || slot == 0 {
        return model.Session{}, errors.New("slot must be a positive integer")
    }
    s, err := model.ParseSession(c.QueryParam("date"), uint8(slot))
    if err != nil {
        return model.Session{}, errors.New("date must be YYYY-MM-DD")
    }
    return s, nil
}

func badRequest(c echo.Context, msg string) error {
    return c.JSON(http.StatusBadRequest, map[string]string{"error": msg})
}

func serverError(c echo.Context, msg string) error {
    return c.JSON(http.StatusInternalServerError, map[string]string{"error": msg})
}
