package utils

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"sahne-client/models"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var trPrinter = message.NewPrinter(language.Turkish)
var nonDigit = regexp.MustCompile(`\D`)

// FormatPrice formate un montant en livres turques (₺2.500,00)
func FormatPrice(amount float64) string {
	return "₺" + trPrinter.Sprint(number.Decimal(amount, number.MinFractionDigits(2), number.MaxFractionDigits(2)))
}

// FormatAmount formate un montant sans décimales inutiles (₺2.500)
func FormatAmount(amount float64) string {
	return "₺" + trPrinter.Sprint(number.Decimal(amount, number.MaxFractionDigits(2)))
}

// FormatDate formate une date de l'API ("June 1, 2025"), ou la renvoie telle quelle si illisible
func FormatDate(value string) string {
	t, err := models.ParseFlexibleTime(value)
	if err != nil {
		return value
	}
	return t.Format("January 2, 2006")
}

// FormatDateTime formate une date et une heure ("June 1, 2025, 07:30 PM")
func FormatDateTime(t time.Time) string {
	return t.Format("January 2, 2006, 03:04 PM")
}

// FormatLongDate formate une date de calendrier avec le jour de la semaine
func FormatLongDate(t time.Time) string {
	return t.Format("Monday, January 2, 2006")
}

// FormatPhone formate un numéro à 10 chiffres en (532) 123-4567
func FormatPhone(phone string) string {
	cleaned := nonDigit.ReplaceAllString(phone, "")
	if len(cleaned) != 10 {
		return phone
	}
	return fmt.Sprintf("(%s) %s-%s", cleaned[:3], cleaned[3:6], cleaned[6:])
}

// IsPlaceholderPhoto indique si une URL de photo est absente ou factice
func IsPlaceholderPhoto(url *string) bool {
	return url == nil || *url == "" || strings.Contains(*url, "placeholder")
}
