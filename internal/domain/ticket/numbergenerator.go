package ticket

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/helpdeskhq/helpdesk/internal/shared/biztime"
)

const numberPrefix = "HD"

// NumberGenerator hands out human-readable ticket numbers such as
// HD-20240311-0007. Sequences restart every business day.
type NumberGenerator interface {
	Generate(ctx context.Context) (string, error)
}

// NumberDayPrefix returns "HD-YYYYMMDD-" for t's business day.
func NumberDayPrefix(t time.Time) string {
	return fmt.Sprintf("%s-%s-", numberPrefix, biztime.FormatInBizTimezone(t, "20060102"))
}

func FormatNumber(t time.Time, seq int) string {
	return fmt.Sprintf("%s%04d", NumberDayPrefix(t), seq)
}

// ParseNumberSequence extracts the trailing sequence of a ticket number.
func ParseNumberSequence(number string) (int, error) {
	idx := strings.LastIndex(number, "-")
	if idx < 0 || !strings.HasPrefix(number, numberPrefix+"-") {
		return 0, fmt.Errorf("malformed ticket number: %s", number)
	}
	seq, err := strconv.Atoi(number[idx+1:])
	if err != nil {
		return 0, fmt.Errorf("malformed ticket number: %s", number)
	}
	return seq, nil
}
