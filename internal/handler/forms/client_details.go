package forms

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/ministryofjustice/laa-civil-case-ui/internal/domain"
)

// phonePattern is deliberately loose: digits with optional leading + and
// internal spaces. Upstream owns the authoritative validation.
var phonePattern = regexp.MustCompile(`^\+?[0-9][0-9 ]{6,19}$`)

// ClientDetailsForm is the personal details edit page body. The date of
// birth arrives as the GOV.UK day / month / year triple.
type ClientDetailsForm struct {
	Title          string `form:"title"`
	FullName       string `form:"full_name"`
	SurnameAtBirth string `form:"surname_at_birth"`

	DOBDay   string `form:"dob_day"`
	DOBMonth string `form:"dob_month"`
	DOBYear  string `form:"dob_year"`

	Phone         string `form:"phone"`
	MobilePhone   string `form:"mobile_phone"`
	Email         string `form:"email"`
	SafeToCall    string `form:"safe_to_call"`
	SafeToEmail   string `form:"safe_to_email"`
	ContactMethod string `form:"contact_method"`

	Street   string `form:"street"`
	City     string `form:"city"`
	Postcode string `form:"postcode"`
}

// FromDomain pre-fills the form from the current details.
func (f *ClientDetailsForm) FromDomain(d domain.ClientDetails) {
	f.Title = d.Title
	f.FullName = d.FullName
	f.SurnameAtBirth = d.SurnameAtBirth
	if !d.DateOfBirth.IsZero() {
		f.DOBDay = strconv.Itoa(d.DateOfBirth.Day())
		f.DOBMonth = strconv.Itoa(int(d.DateOfBirth.Month()))
		f.DOBYear = strconv.Itoa(d.DateOfBirth.Year())
	}
	f.Phone = d.Phone
	f.MobilePhone = d.MobilePhone
	f.Email = d.Email
	if d.SafeToCall {
		f.SafeToCall = "on"
	}
	if d.SafeToEmail {
		f.SafeToEmail = "on"
	}
	f.ContactMethod = d.ContactMethod
	f.Street = d.Address.Street
	f.City = d.Address.City
	f.Postcode = d.Address.Postcode
}

// Validate checks the form and, when clean, returns the domain details.
func (f *ClientDetailsForm) Validate(now time.Time) (domain.ClientDetails, Errors) {
	var errs Errors

	f.FullName = strings.TrimSpace(f.FullName)
	if f.FullName == "" {
		errs.add("full_name", "Enter the client's full name")
	}

	dob, dobErr := parseDOB(f.DOBDay, f.DOBMonth, f.DOBYear)
	if dobErr != "" {
		errs.add("date_of_birth", dobErr)
	} else if !dob.IsZero() && dob.After(now) {
		errs.add("date_of_birth", "Date of birth must be in the past")
	}

	f.Phone = strings.TrimSpace(f.Phone)
	if f.Phone != "" && !phonePattern.MatchString(f.Phone) {
		errs.add("phone", "Enter a phone number, like 01632 960 001")
	}
	f.MobilePhone = strings.TrimSpace(f.MobilePhone)
	if f.MobilePhone != "" && !phonePattern.MatchString(f.MobilePhone) {
		errs.add("mobile_phone", "Enter a mobile number, like 07700 900 982")
	}

	f.Email = strings.TrimSpace(f.Email)
	if f.Email != "" && !strings.Contains(f.Email, "@") {
		errs.add("email", "Enter an email address in the correct format")
	}

	if errs.Any() {
		return domain.ClientDetails{}, errs
	}

	return domain.ClientDetails{
		Title:          strings.TrimSpace(f.Title),
		FullName:       f.FullName,
		SurnameAtBirth: strings.TrimSpace(f.SurnameAtBirth),
		DateOfBirth:    dob,
		Phone:          f.Phone,
		MobilePhone:    f.MobilePhone,
		Email:          f.Email,
		SafeToCall:     checked(f.SafeToCall),
		SafeToEmail:    checked(f.SafeToEmail),
		ContactMethod:  strings.TrimSpace(f.ContactMethod),
		Address: domain.Address{
			Street:   strings.TrimSpace(f.Street),
			City:     strings.TrimSpace(f.City),
			Postcode: strings.ToUpper(strings.TrimSpace(f.Postcode)),
		},
	}, nil
}

// parseDOB turns the day/month/year triple into a date. All three parts
// empty means the date was left blank, which is allowed.
func parseDOB(day, month, year string) (time.Time, string) {
	day, month, year = strings.TrimSpace(day), strings.TrimSpace(month), strings.TrimSpace(year)
	if day == "" && month == "" && year == "" {
		return time.Time{}, ""
	}
	if day == "" || month == "" || year == "" {
		return time.Time{}, "Date of birth must include a day, month and year"
	}

	d, errD := strconv.Atoi(day)
	m, errM := strconv.Atoi(month)
	y, errY := strconv.Atoi(year)
	if errD != nil || errM != nil || errY != nil || y < 1000 || y > 9999 {
		return time.Time{}, "Date of birth must be a real date"
	}

	dob := time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
	// time.Date normalises 30 February to 2 March; a round trip catches it.
	if dob.Year() != y || dob.Month() != time.Month(m) || dob.Day() != d {
		return time.Time{}, "Date of birth must be a real date"
	}
	return dob, ""
}
