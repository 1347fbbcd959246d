package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/k4lab/go-cipher-search/cipher"
	"github.com/k4lab/go-cipher-search/internal/clock"
	internalErrors "github.com/k4lab/go-cipher-search/internal/errors"
)

// GetClockStateHandler inspects the auxiliary state generator for one
// seconds-of-day value: the lamp bits, the lit count, and the shift the
// search engine would derive from it.
func (api *API) GetClockStateHandler(c *gin.Context) {
	secondsParam := c.Param("seconds")

	seconds, err := strconv.Atoi(secondsParam)
	if err != nil {
		SendError(c, http.StatusBadRequest, ErrorCodeInvalidRequest,
			"Seconds must be an integer, got '"+secondsParam+"'")
		return
	}

	state, err := clock.FromSeconds(seconds)
	if err != nil {
		if errors.Is(err, internalErrors.ErrInvalidDomain) {
			SendInvalidDomainError(c, err)
			return
		}
		SendInternalError(c, "clock state", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"seconds":    seconds,
		"bit_string": state.BitString(),
		"lit_count":  state.LitCount(),
		"shift":      state.Shift(cipher.AlphabetSize),
	})
}
