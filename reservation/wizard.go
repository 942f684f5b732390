// Package reservation porte le parcours de réservation en quatre étapes
// (date et heure, invités, confirmation, succès) et les règles d'affichage
// des réservations existantes.
package reservation

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"sahne-client/apierror"
	"sahne-client/constants"
	"sahne-client/models"
	"sahne-client/utils"
)

// Step est l'étape courante du parcours
type Step int

const (
	StepDate Step = iota + 1
	StepDetails
	StepConfirm
	StepSuccess
	StepAborted
)

func (s Step) String() string {
	switch s {
	case StepDate:
		return "date"
	case StepDetails:
		return "details"
	case StepConfirm:
		return "confirm"
	case StepSuccess:
		return "success"
	case StepAborted:
		return "aborted"
	}
	return "unknown"
}

var (
	ErrWrongStep  = errors.New("action impossible à cette étape de la réservation")
	ErrClosed     = errors.New("la réservation est terminée ou abandonnée")
	ErrSubmitting = errors.New("une demande de réservation est déjà en cours")
)

// Creator envoie la demande de réservation finale
type Creator interface {
	CreateReservation(ctx context.Context, req models.CreateReservationRequest) (*models.CreateReservationResponse, error)
}

// Draft est le brouillon accumulé au fil des étapes, jamais persisté
type Draft struct {
	ChefID              int64
	ChefName            string
	ChefPhoto           string
	PackageID           int64
	PackageName         string
	PackagePrice        float64
	Date                string // YYYY-MM-DD
	Time                string // HH:MM
	GuestCount          int
	EventType           string
	SpecialRequests     string
	DietaryRestrictions []string
	Address             string
	AddressType         models.AddressType
}

// Result est ce que l'écran de succès affiche
type Result struct {
	ReservationID int64
	ChefName      string
	Message       string
	Reservation   models.Reservation
}

// Flow ouvre des sessions de réservation
type Flow struct {
	creator Creator
	loc     *time.Location
	now     func() time.Time
}

// NewFlow crée un contrôleur de parcours ; les dates sont des jours calendaires de loc
func NewFlow(creator Creator, loc *time.Location) *Flow {
	if loc == nil {
		loc = time.Local
	}
	return &Flow{creator: creator, loc: loc, now: time.Now}
}

// Start ouvre une session pour une formule active d'un chef
func (f *Flow) Start(chef models.ChefProfile, packageID int64) (*Wizard, error) {
	pkg, ok := chef.Package(packageID)
	if !ok {
		return nil, apierror.ClientValidation(constants.ErrPackageNotFound, nil)
	}
	if !pkg.IsActive {
		return nil, apierror.ClientValidation(constants.ErrPackageInactive, nil)
	}

	w := &Wizard{
		flow:   f,
		step:   StepDate,
		period: Dinner,
		draft: Draft{
			ChefID:       chef.ID,
			ChefName:     chef.User.Name,
			PackageID:    pkg.ID,
			PackageName:  pkg.DisplayName,
			PackagePrice: pkg.PricePerPerson,
		},
	}
	if chef.ProfileImage != nil {
		w.draft.ChefPhoto = *chef.ProfileImage
	}
	w.resetDetails()
	w.draft.Date = w.minDate().Format(DateLayout)
	return w, nil
}

// Wizard est une session de réservation avec une entrée (Start) et deux sorties (Submit, Abort)
type Wizard struct {
	flow *Flow

	mu          sync.Mutex
	step        Step
	period      MealPeriod
	draft       Draft
	termsAccept bool
	submitting  bool
	result      *Result
}

// Step retourne l'étape courante
func (w *Wizard) Step() Step {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.step
}

// Draft retourne une copie du brouillon
func (w *Wizard) Draft() Draft {
	w.mu.Lock()
	defer w.mu.Unlock()
	d := w.draft
	d.DietaryRestrictions = append([]string(nil), w.draft.DietaryRestrictions...)
	return d
}

// Result retourne le résultat après une soumission réussie
func (w *Wizard) Result() (Result, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.result == nil {
		return Result{}, false
	}
	return *w.result, true
}

func (w *Wizard) expect(step Step) error {
	if w.step == StepSuccess || w.step == StepAborted {
		return ErrClosed
	}
	if w.step != step {
		return fmt.Errorf("%w (étape courante: %s)", ErrWrongStep, w.step)
	}
	return nil
}

func (w *Wizard) today() time.Time {
	now := w.flow.now().In(w.flow.loc)
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, w.flow.loc)
}

func (w *Wizard) minDate() time.Time {
	return w.today().AddDate(0, 0, 1)
}

func (w *Wizard) maxDate() time.Time {
	return w.today().AddDate(0, BookingWindowMonths, 0)
}

// DateRange retourne les bornes incluses des dates réservables
func (w *Wizard) DateRange() (time.Time, time.Time) {
	return w.minDate(), w.maxDate()
}

// SelectDate choisit le jour (YYYY-MM-DD) et efface l'heure déjà choisie
func (w *Wizard) SelectDate(date string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.expect(StepDate); err != nil {
		return err
	}

	day, err := time.ParseInLocation(DateLayout, strings.TrimSpace(date), w.flow.loc)
	if err != nil {
		return apierror.ClientValidation(constants.MsgFixErrors, map[string][]string{"date": {fmt.Sprintf("date invalide: %s", date)}})
	}
	if day.Before(w.minDate()) || day.After(w.maxDate()) {
		return apierror.ClientValidation(constants.MsgFixErrors, map[string][]string{
			"date": {fmt.Sprintf("la date doit être comprise entre le %s et le %s", w.minDate().Format(DateLayout), w.maxDate().Format(DateLayout))},
		})
	}

	w.draft.Date = day.Format(DateLayout)
	w.draft.Time = ""
	return nil
}

// MealPeriod retourne le service sélectionné
func (w *Wizard) MealPeriod() MealPeriod {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.period
}

// SetMealPeriod change de service ; un changement efface l'heure choisie
func (w *Wizard) SetMealPeriod(period MealPeriod) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.expect(StepDate); err != nil {
		return err
	}
	if _, ok := timeSlots[period]; !ok {
		return apierror.ClientValidation(constants.MsgFixErrors, map[string][]string{"meal_period": {fmt.Sprintf("service inconnu: %s", period)}})
	}
	if period != w.period {
		w.period = period
		w.draft.Time = ""
	}
	return nil
}

// AvailableTimes retourne les créneaux du service sélectionné
func (w *Wizard) AvailableTimes() []string {
	return TimeSlots(w.MealPeriod())
}

// SelectTime choisit un créneau du service courant
func (w *Wizard) SelectTime(slot string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.expect(StepDate); err != nil {
		return err
	}
	if !contains(timeSlots[w.period], slot) {
		return apierror.ClientValidation(constants.MsgSelectTime, map[string][]string{"time": {constants.MsgSelectTime}})
	}
	w.draft.Time = slot
	return nil
}

// ContinueToDetails valide l'étape 1
func (w *Wizard) ContinueToDetails() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.expect(StepDate); err != nil {
		return err
	}
	if w.draft.Time == "" {
		return apierror.ClientValidation(constants.MsgSelectTime, map[string][]string{"time": {constants.MsgSelectTime}})
	}
	w.step = StepDetails
	return nil
}

// IncrementGuests ajoute un invité ; sans effet à 12
func (w *Wizard) IncrementGuests() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.expect(StepDetails) != nil || w.draft.GuestCount >= MaxGuests {
		return false
	}
	w.draft.GuestCount++
	return true
}

// DecrementGuests retire un invité ; sans effet à 2
func (w *Wizard) DecrementGuests() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.expect(StepDetails) != nil || w.draft.GuestCount <= MinGuests {
		return false
	}
	w.draft.GuestCount--
	return true
}

// SetGuestCount fixe le nombre d'invités, ramené dans [2, 12]
func (w *Wizard) SetGuestCount(n int) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.expect(StepDetails); err != nil {
		return err
	}
	w.draft.GuestCount = clampGuests(n)
	return nil
}

func clampGuests(n int) int {
	if n < MinGuests {
		return MinGuests
	}
	if n > MaxGuests {
		return MaxGuests
	}
	return n
}

// SetEventType choisit l'occasion parmi EventTypes
func (w *Wizard) SetEventType(eventType string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.expect(StepDetails); err != nil {
		return err
	}
	if !contains(EventTypes, eventType) {
		return apierror.ClientValidation(constants.MsgSelectEventType, map[string][]string{"event_type": {constants.MsgSelectEventType}})
	}
	w.draft.EventType = eventType
	return nil
}

// ToggleDietary ajoute ou retire une restriction alimentaire ; retourne son nouvel état
func (w *Wizard) ToggleDietary(option string) (bool, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.expect(StepDetails); err != nil {
		return false, err
	}
	if !contains(DietaryOptions, option) {
		return false, apierror.ClientValidation(constants.MsgFixErrors, map[string][]string{"dietary_restrictions": {fmt.Sprintf("option inconnue: %s", option)}})
	}

	for i, v := range w.draft.DietaryRestrictions {
		if v == option {
			w.draft.DietaryRestrictions = append(w.draft.DietaryRestrictions[:i:i], w.draft.DietaryRestrictions[i+1:]...)
			return false, nil
		}
	}
	w.draft.DietaryRestrictions = append(w.draft.DietaryRestrictions, option)
	return true, nil
}

// SetDietary remplace les restrictions alimentaires par options, sans doublon et dans l'ordre de saisie
func (w *Wizard) SetDietary(options []string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.expect(StepDetails); err != nil {
		return err
	}

	selected := make([]string, 0, len(options))
	for _, option := range options {
		if !contains(DietaryOptions, option) {
			return apierror.ClientValidation(constants.MsgFixErrors, map[string][]string{"dietary_restrictions": {fmt.Sprintf("option inconnue: %s", option)}})
		}
		if !contains(selected, option) {
			selected = append(selected, option)
		}
	}
	w.draft.DietaryRestrictions = selected
	return nil
}

// SetSpecialRequests enregistre les demandes particulières, coupées à 500 caractères.
// Retourne true si le texte a été tronqué.
func (w *Wizard) SetSpecialRequests(text string) (bool, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.expect(StepDetails); err != nil {
		return false, err
	}
	truncated := utils.Truncate(text, MaxSpecialRequests)
	w.draft.SpecialRequests = truncated
	return truncated != text, nil
}

// SetAddress enregistre l'adresse de la prestation
func (w *Wizard) SetAddress(address string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.expect(StepDetails); err != nil {
		return err
	}
	w.draft.Address = address
	return nil
}

// SetAddressType choisit le type de lieu
func (w *Wizard) SetAddressType(t models.AddressType) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.expect(StepDetails); err != nil {
		return err
	}
	if !t.Valid() {
		return apierror.ClientValidation(constants.MsgFixErrors, map[string][]string{"address_type": {fmt.Sprintf("type d'adresse inconnu: %s", t)}})
	}
	w.draft.AddressType = t
	return nil
}

// ContinueToConfirm valide l'étape 2 (occasion et adresse requises)
func (w *Wizard) ContinueToConfirm() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.expect(StepDetails); err != nil {
		return err
	}

	fields := utils.FieldErrors{}
	if w.draft.EventType == "" {
		fields.Set("event_type", constants.MsgSelectEventType)
	}
	if strings.TrimSpace(w.draft.Address) == "" {
		fields.Set("address", constants.MsgEnterAddress)
	}
	if err := fields.Err(); err != nil {
		return err
	}

	w.draft.Address = strings.TrimSpace(w.draft.Address)
	w.draft.SpecialRequests = strings.TrimSpace(w.draft.SpecialRequests)
	w.step = StepConfirm
	return nil
}

// Total recalcule le prix total : prix par personne × invités
func (w *Wizard) Total() float64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.draft.PackagePrice * float64(w.draft.GuestCount)
}

// AcceptTerms coche ou décoche l'acceptation des conditions
func (w *Wizard) AcceptTerms(accepted bool) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.expect(StepConfirm); err != nil {
		return err
	}
	w.termsAccept = accepted
	return nil
}

// CanSubmit indique si le bouton de confirmation est actif
func (w *Wizard) CanSubmit() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.step == StepConfirm && w.termsAccept && !w.submitting
}

// Request construit la demande envoyée au serveur à partir du brouillon
func (w *Wizard) Request() models.CreateReservationRequest {
	w.mu.Lock()
	defer w.mu.Unlock()
	return BuildRequest(w.draft)
}

// BuildRequest convertit un brouillon complet en corps de POST /reservations
func BuildRequest(d Draft) models.CreateReservationRequest {
	addressType := d.AddressType
	if addressType == "" {
		addressType = models.AddressHome
	}
	return models.CreateReservationRequest{
		ChefProfileID:       d.ChefID,
		ExperiencePackageID: d.PackageID,
		Date:                fmt.Sprintf("%sT%s:00", d.Date, d.Time),
		Time:                d.Time,
		GuestCount:          d.GuestCount,
		Address:             strings.TrimSpace(d.Address),
		AddressType:         addressType,
		SpecialOccasion:     d.EventType,
		DietaryNotes:        strings.Join(d.DietaryRestrictions, ", "),
		Allergies:           strings.TrimSpace(d.SpecialRequests),
	}
}

// Submit envoie la demande une seule fois. En cas d'échec le brouillon est
// conservé et l'utilisateur peut réessayer ; en cas de succès il est abandonné.
func (w *Wizard) Submit(ctx context.Context) (*Result, error) {
	w.mu.Lock()
	if err := w.expect(StepConfirm); err != nil {
		w.mu.Unlock()
		return nil, err
	}
	if w.submitting {
		w.mu.Unlock()
		return nil, ErrSubmitting
	}
	if !w.termsAccept {
		w.mu.Unlock()
		return nil, apierror.ClientValidation(constants.MsgAcceptTerms, map[string][]string{"terms": {constants.MsgAcceptTerms}})
	}
	w.submitting = true
	req := BuildRequest(w.draft)
	chefName := w.draft.ChefName
	w.mu.Unlock()

	resp, err := w.flow.creator.CreateReservation(ctx, req)

	w.mu.Lock()
	defer w.mu.Unlock()
	w.submitting = false
	if err != nil {
		log.Printf("⚠️ Création de la réservation échouée: %v", err)
		return nil, err
	}

	w.result = &Result{
		ReservationID: resp.Data.ID,
		ChefName:      chefName,
		Message:       resp.Message,
		Reservation:   resp.Data,
	}
	w.draft = Draft{}
	w.termsAccept = false
	w.step = StepSuccess
	log.Printf("✓ Réservation #%d envoyée à %s", resp.Data.ID, chefName)
	return w.result, nil
}

// Back revient à l'étape précédente en abandonnant les saisies de l'étape quittée.
// Depuis la première étape, la session est abandonnée.
func (w *Wizard) Back() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.submitting {
		return ErrSubmitting
	}

	switch w.step {
	case StepDate:
		w.abort()
	case StepDetails:
		w.resetDetails()
		w.step = StepDate
	case StepConfirm:
		w.termsAccept = false
		w.step = StepDetails
	default:
		return ErrClosed
	}
	return nil
}

// Abort abandonne la session ; le brouillon n'est pas récupérable
func (w *Wizard) Abort() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.step != StepSuccess {
		w.abort()
	}
}

func (w *Wizard) abort() {
	w.draft = Draft{}
	w.termsAccept = false
	w.step = StepAborted
}

func (w *Wizard) resetDetails() {
	w.draft.GuestCount = DefaultGuests
	w.draft.EventType = ""
	w.draft.SpecialRequests = ""
	w.draft.DietaryRestrictions = nil
	w.draft.Address = ""
	w.draft.AddressType = models.AddressHome
}
