package affiliate

import (
	"strconv"
	"time"

	"github.com/Strob0t/clientdesk/internal/domain/user"
)

// ConversionHeader is the header row of the conversions export.
var ConversionHeader = []string{
	"Email", "First Name", "Last Name", "Phone Number",
	"Address", "City", "State", "Zip", "Date Registered",
}

// ConversionRow renders one sponsored user as an export row.
func ConversionRow(u *user.User) []string {
	return []string{
		u.Email, u.FirstName, u.LastName, u.Phone,
		u.Address, u.City, u.State, u.Zip,
		u.CreatedAt.Format("01/02/2006"),
	}
}

// ConversionFilename names the export of sponsor at time now.
func ConversionFilename(sponsor int64, now time.Time) string {
	return strconv.FormatInt(sponsor, 10) + now.Format("01-02-2006-03-04-05") + "conversions.csv"
}
