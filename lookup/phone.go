package lookup

import (
	"context"
	"fmt"
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// PhoneRecord holds the metadata extracted for a phone number
type PhoneRecord struct {
	Formatted      string
	CountryCode    int32
	NationalNumber uint64
	Region         string
	Carrier        string
	Type           string
	Timezones      []string
	Valid          bool
	Possible       bool
}

// ParsePhone parses an international number (leading + required) and collects
// its metadata
func ParsePhone(text string) (*PhoneRecord, error) {
	num, err := phonenumbers.Parse(text, "")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPhone, err)
	}

	rec := &PhoneRecord{
		Formatted:      phonenumbers.Format(num, phonenumbers.INTERNATIONAL),
		CountryCode:    num.GetCountryCode(),
		NationalNumber: num.GetNationalNumber(),
		Region:         phonenumbers.GetRegionCodeForNumber(num),
		Type:           phoneTypeName(phonenumbers.GetNumberType(num)),
		Valid:          phonenumbers.IsValidNumber(num),
		Possible:       phonenumbers.IsPossibleNumber(num),
	}

	// Carrier and timezone data are best effort
	if name, err := phonenumbers.GetCarrierForNumber(num, "en"); err == nil {
		rec.Carrier = name
	}
	if zones, err := phonenumbers.GetTimezonesForNumber(num); err == nil {
		rec.Timezones = zones
	}

	return rec, nil
}

// Render formats the record for the result area
func (p *PhoneRecord) Render() string {
	carrier := p.Carrier
	if carrier == "" {
		carrier = "Unknown"
	}
	zones := strings.Join(p.Timezones, ", ")
	if zones == "" {
		zones = "Unknown"
	}
	region := p.Region
	if region == "" || region == "ZZ" {
		region = "Unknown"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Number: %s\n", p.Formatted)
	fmt.Fprintf(&b, "Country Code: %d\n", p.CountryCode)
	fmt.Fprintf(&b, "National Number: %d\n", p.NationalNumber)
	fmt.Fprintf(&b, "Country: %s\n", region)
	fmt.Fprintf(&b, "Carrier: %s\n", carrier)
	fmt.Fprintf(&b, "Type: %s\n", p.Type)
	fmt.Fprintf(&b, "Timezone: %s\n", zones)
	fmt.Fprintf(&b, "Valid: %s\n", yesNo(p.Valid))
	fmt.Fprintf(&b, "Possible: %s", yesNo(p.Possible))
	return b.String()
}

// Phone is the phone-number lookup function
func (l *Lookups) Phone(_ context.Context, input string) Result {
	rec, err := ParsePhone(input)
	if err != nil {
		return Failed(err)
	}
	return Success(rec.Render())
}

func phoneTypeName(t phonenumbers.PhoneNumberType) string {
	switch t {
	case phonenumbers.FIXED_LINE:
		return "FIXED_LINE"
	case phonenumbers.MOBILE:
		return "MOBILE"
	case phonenumbers.FIXED_LINE_OR_MOBILE:
		return "FIXED_LINE_OR_MOBILE"
	case phonenumbers.TOLL_FREE:
		return "TOLL_FREE"
	case phonenumbers.PREMIUM_RATE:
		return "PREMIUM_RATE"
	case phonenumbers.SHARED_COST:
		return "SHARED_COST"
	case phonenumbers.VOIP:
		return "VOIP"
	case phonenumbers.PERSONAL_NUMBER:
		return "PERSONAL_NUMBER"
	case phonenumbers.PAGER:
		return "PAGER"
	case phonenumbers.UAN:
		return "UAN"
	case phonenumbers.VOICEMAIL:
		return "VOICEMAIL"
	default:
		return "UNKNOWN"
	}
}
