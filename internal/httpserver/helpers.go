package httpserver

import (
	"errors"
	"strconv"

	"github.com/labstack/echo/v4"
)

var errBadID = errors.New("id is not an integer")

func parseID(c echo.Context) (int, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return 0, errBadID
	}
	return id, nil
}
