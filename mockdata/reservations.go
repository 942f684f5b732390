package mockdata

import (
	"context"
	"fmt"
	"strings"
	"time"

	"sahne-client/constants"
	"sahne-client/models"
	"sahne-client/utils"
)

const dateTimeLayout = "2006-01-02T15:04"

// Actor identifie l'appelant authentifié (issu des claims JWT)
type Actor struct {
	UserID int64
	Role   models.Role
}

// CreateReservation enregistre une demande en attente pour un client
func (s *Store) CreateReservation(ctx context.Context, clientID int64, req models.CreateReservationRequest) (models.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	client, err := s.repos.Users.FindByID(ctx, clientID)
	if err != nil {
		return models.Reservation{}, err
	}
	if client == nil {
		return models.Reservation{}, notFound(constants.ErrUserNotFound)
	}
	chef, err := s.repos.Chefs.FindByID(ctx, req.ChefProfileID)
	if err != nil {
		return models.Reservation{}, err
	}
	if chef == nil || !chef.Active {
		return models.Reservation{}, notFound(constants.ErrChefNotFound)
	}

	fields := utils.FieldErrors{}
	pkg, ok := chef.Package(req.ExperiencePackageID)
	switch {
	case !ok:
		fields.Set("experience_package_id", constants.ErrPackageNotFound)
	case !pkg.IsActive:
		fields.Set("experience_package_id", constants.ErrPackageInactive)
	case req.GuestCount > pkg.MaxGuests:
		fields.Set("guest_count", fmt.Sprintf(constants.MsgTooManyGuests, pkg.MaxGuests))
	}
	if req.GuestCount < 1 {
		fields.Set("guest_count", constants.MsgRequired)
	}

	date, clock, startsAt, err := s.parseSlot(req.Date, req.Time)
	if err != nil {
		fields.Set("date", constants.MsgInvalidDate)
	} else if !startsAt.After(s.now()) {
		fields.Set("date", constants.MsgDateInPast)
	}

	address := strings.TrimSpace(req.Address)
	fields.Add(utils.ValidateRequired("address", address))
	fields.Add(utils.ValidateMaxLength("address", address, utils.MaxTextLength))
	addressType := req.AddressType
	if addressType == "" {
		addressType = models.AddressHome
	}
	if !addressType.Valid() {
		fields.Set("address_type", constants.ErrInvalidData)
	}
	fields.Add(utils.ValidateMaxLength("allergies", req.Allergies, utils.MaxTextLength))

	if err := invalid(fields); err != nil {
		return models.Reservation{}, err
	}

	taken, err := s.repos.Reservations.Find(ctx, models.ReservationFilter{
		ChefID:   chef.ID,
		Date:     date,
		Time:     clock,
		Statuses: activeStatuses,
	})
	if err != nil {
		return models.Reservation{}, err
	}
	if len(taken) > 0 {
		return models.Reservation{}, conflict(constants.ErrSlotTaken)
	}

	chefUser, err := s.chefUser(ctx, chef)
	if err != nil {
		return models.Reservation{}, err
	}
	id, err := s.repos.Sequences.Next(ctx, SequenceReservations)
	if err != nil {
		return models.Reservation{}, err
	}

	now := s.timestamp()
	r := &models.Reservation{
		ID:              id,
		ClientID:        clientID,
		ChefID:          chef.ID,
		PackageID:       pkg.ID,
		Date:            date,
		Time:            clock,
		GuestCount:      req.GuestCount,
		Address:         address,
		AddressType:     addressType,
		SpecialOccasion: optional(req.SpecialOccasion),
		Allergies:       optional(req.Allergies),
		DietaryNotes:    optional(req.DietaryNotes),
		SpecialRequests: optional(req.Allergies),
		Status:          models.StatusPending,
		TotalPrice:      pkg.PricePerPerson * float64(req.GuestCount),
		CreatedAt:       now,
		UpdatedAt:       now,
		Client:          party(client.ID, client.Name, client.Email, client.Phone),
		Chef:            party(chefUser.ID, chefUser.Name, chefUser.Email, chefUser.Phone),
		Package: &models.ReservationPackage{
			ID:             pkg.ID,
			Name:           pkg.DisplayName,
			DisplayName:    pkg.DisplayName,
			Price:          pkg.BasePrice,
			PricePerPerson: pkg.PricePerPerson,
			DurationHours:  pkg.DurationHours,
			Type:           pkg.Type,
			CoursesCount:   pkg.CoursesCount,
			IncludesWine:   pkg.IncludesWine,
		},
	}
	r.Chef.Title = chef.Title
	if err := s.repos.Reservations.Create(ctx, r); err != nil {
		return models.Reservation{}, err
	}

	return *r, nil
}

// parseSlot accepte "YYYY-MM-DDTHH:MM:SS" et une heure "HH:MM" optionnelle qui prime
func (s *Store) parseSlot(dateTime, clock string) (string, string, time.Time, error) {
	if len(dateTime) < 10 {
		return "", "", time.Time{}, fmt.Errorf("date invalide: %q", dateTime)
	}
	date := dateTime[:10]
	if clock == "" && len(dateTime) >= 16 {
		clock = dateTime[11:16]
	}
	if len(clock) < 5 {
		return "", "", time.Time{}, fmt.Errorf("heure invalide: %q", clock)
	}
	clock = clock[:5]

	startsAt, err := time.ParseInLocation(dateTimeLayout, date+"T"+clock, s.loc)
	if err != nil {
		return "", "", time.Time{}, err
	}
	return date, clock, startsAt, nil
}

// ListReservations retourne les réservations dont l'appelant est partie, plus récentes d'abord
func (s *Store) ListReservations(ctx context.Context, actor Actor, status models.ReservationStatus) ([]models.Reservation, error) {
	filter, ok, err := s.partyFilter(ctx, actor)
	if err != nil || !ok {
		return []models.Reservation{}, err
	}
	if status != "" {
		filter.Statuses = []models.ReservationStatus{status}
	}
	return s.repos.Reservations.Find(ctx, filter)
}

// Reservation retourne une réservation visible par l'appelant
func (s *Store) Reservation(ctx context.Context, actor Actor, id int64) (models.Reservation, error) {
	r, err := s.visibleReservation(ctx, actor, id)
	if err != nil {
		return models.Reservation{}, err
	}
	return *r, nil
}

// CancelReservation annule une réservation en attente ou confirmée (client)
func (s *Store) CancelReservation(ctx context.Context, actor Actor, id int64) (models.Reservation, error) {
	return s.transition(ctx, actor, id, models.RoleClient, func(r *models.Reservation) error {
		if !r.CanCancel() {
			return conflict(constants.ErrCannotCancel)
		}
		r.Status = models.StatusCancelled
		return nil
	})
}

// ConfirmReservation accepte une demande en attente (chef)
func (s *Store) ConfirmReservation(ctx context.Context, actor Actor, id int64) (models.Reservation, error) {
	return s.transition(ctx, actor, id, models.RoleChef, func(r *models.Reservation) error {
		if r.Status != models.StatusPending {
			return conflict(constants.ErrInvalidTransition)
		}
		r.Status = models.StatusChefConfirmed
		return nil
	})
}

// RejectReservation refuse une demande en attente avec un motif (chef)
func (s *Store) RejectReservation(ctx context.Context, actor Actor, id int64, reason string) (models.Reservation, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		fields := utils.FieldErrors{}
		fields.Set("reason", constants.MsgReasonRequired)
		return models.Reservation{}, invalid(fields)
	}

	return s.transition(ctx, actor, id, models.RoleChef, func(r *models.Reservation) error {
		if r.Status != models.StatusPending {
			return conflict(constants.ErrInvalidTransition)
		}
		r.Status = models.StatusRejected
		r.RejectionReason = &reason
		return nil
	})
}

// CompleteReservation marque une prestation confirmée comme terminée (chef)
func (s *Store) CompleteReservation(ctx context.Context, actor Actor, id int64) (models.Reservation, error) {
	return s.transition(ctx, actor, id, models.RoleChef, func(r *models.Reservation) error {
		if !isConfirmed(r.Status) {
			return conflict(constants.ErrInvalidTransition)
		}
		r.Status = models.StatusCompleted
		return nil
	})
}

// CompletePast termine les réservations confirmées dont le créneau est passé ; retourne le nombre modifié
func (s *Store) CompletePast(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	confirmed, err := s.repos.Reservations.Find(ctx, models.ReservationFilter{Statuses: confirmedStatuses})
	if err != nil {
		return 0, err
	}

	now := s.now()
	count := 0
	for i := range confirmed {
		r := &confirmed[i]
		startsAt, err := r.StartsAt(s.loc)
		if err != nil || startsAt.After(now) {
			continue
		}
		r.Status = models.StatusCompleted
		r.UpdatedAt = s.timestamp()
		if err := s.repos.Reservations.Update(ctx, r); err != nil {
			return count, err
		}
		count++
	}
	return count, nil
}

// transition applique apply sous verrou si l'appelant a le rôle requis et est partie de la réservation
func (s *Store) transition(ctx context.Context, actor Actor, id int64, role models.Role, apply func(*models.Reservation) error) (models.Reservation, error) {
	if actor.Role != role {
		message := constants.ErrClientOnly
		if role == models.RoleChef {
			message = constants.ErrChefOnly
		}
		return models.Reservation{}, forbidden(message)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	r, err := s.visibleReservation(ctx, actor, id)
	if err != nil {
		return models.Reservation{}, err
	}
	if err := apply(r); err != nil {
		return models.Reservation{}, err
	}
	r.UpdatedAt = s.timestamp()
	if err := s.repos.Reservations.Update(ctx, r); err != nil {
		return models.Reservation{}, err
	}
	return *r, nil
}

// visibleReservation charge une réservation dont l'appelant est partie (404 sinon)
func (s *Store) visibleReservation(ctx context.Context, actor Actor, id int64) (*models.Reservation, error) {
	r, err := s.repos.Reservations.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, notFound(constants.ErrReservationNotFound)
	}
	filter, ok, err := s.partyFilter(ctx, actor)
	if err != nil {
		return nil, err
	}
	if !ok || !filter.Matches(*r) {
		return nil, notFound(constants.ErrReservationNotFound)
	}
	return r, nil
}

// partyFilter restreint aux réservations de l'appelant (ok=false s'il n'en a aucune possible)
func (s *Store) partyFilter(ctx context.Context, actor Actor) (models.ReservationFilter, bool, error) {
	switch actor.Role {
	case models.RoleClient:
		return models.ReservationFilter{ClientID: actor.UserID}, true, nil
	case models.RoleChef:
		chefID, ok, err := s.ChefIDForUser(ctx, actor.UserID)
		if err != nil || !ok {
			return models.ReservationFilter{}, false, err
		}
		return models.ReservationFilter{ChefID: chefID}, true, nil
	}
	return models.ReservationFilter{}, false, nil
}

var (
	activeStatuses    = []models.ReservationStatus{models.StatusPending, models.StatusConfirmed, models.StatusChefConfirmed}
	confirmedStatuses = []models.ReservationStatus{models.StatusConfirmed, models.StatusChefConfirmed}
)

func isConfirmed(status models.ReservationStatus) bool {
	return status == models.StatusConfirmed || status == models.StatusChefConfirmed
}

func optional(value string) *string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	return &value
}

func party(id int64, name, email, phone string) *models.ReservationParty {
	return &models.ReservationParty{ID: id, Name: name, Email: optional(email), Phone: optional(phone)}
}
