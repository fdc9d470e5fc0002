package equipment

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// GenerateBarcode returns a new tag of the form EQ-XXXXXXXX-XXXXXX: the low eight
// hex digits of the current time in 100ns ticks and six random hex digits.
func GenerateBarcode() string {
	return generateBarcode(time.Now())
}

func generateBarcode(now time.Time) string {
	ticks := strings.ToUpper(strconv.FormatUint(uint64(now.UnixNano()/100), 16))
	if len(ticks) > 8 {
		ticks = ticks[len(ticks)-8:]
	}
	random := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:6])
	return fmt.Sprintf("EQ-%s-%s", ticks, random)
}
