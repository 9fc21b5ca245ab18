package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bookwell/config"
	appointmentRepo "bookwell/database/repository/appointment"
	catalogRepo "bookwell/database/repository/catalog"
	"bookwell/models"
	"bookwell/services/notification"
	"bookwell/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ReservationItem is one requested service leg inside an acquire call.
// Start times are not supplied per item; legs are chained back to back
// from the request's anchor start.
type ReservationItem struct {
	ServiceID string   `json:"serviceId"`
	StaffID   string   `json:"staffId"`
	AddOnIDs  []string `json:"addOnIds,omitempty"`
}

// ReservationRequest asks to hold a concrete time range for a client.
// Start is the span start the client picked from discovery; buffers and
// home-service travel are folded into the held range so the hold covers
// exactly what the slot advertised.
type ReservationRequest struct {
	VendorID     string            `json:"vendorId"`
	ClientID     string            `json:"clientId"`
	Date         string            `json:"date"` // "YYYY-MM-DD"
	Start        int               `json:"start"`
	HomeService  bool              `json:"homeService"`
	Location     *models.GeoPoint  `json:"location,omitempty"`
	BufferBefore int               `json:"bufferBefore"`
	BufferAfter  int               `json:"bufferAfter"`
	PackageID    string            `json:"packageId,omitempty"`
	Items        []ReservationItem `json:"items,omitempty"`
}

// LockGrant is the credential returned by a successful acquire. The token
// is required to confirm or cancel the hold and is never persisted in
// client-visible appointment payloads.
type LockGrant struct {
	AppointmentID string    `json:"appointmentId"`
	LockToken     string    `json:"lockToken"`
	ExpiresAt     time.Time `json:"expiresAt"`
	TotalAmount   float64   `json:"totalAmount"`
}

// ReservationService drives the hold lifecycle:
//
//	acquire -> temp-locked -> confirm (durable)
//	                       -> release / cancel (gone)
//	                       -> TTL expiry (invisible, then swept)
type ReservationService interface {
	AcquireLock(ctx context.Context, req ReservationRequest) (*LockGrant, error)
	ConfirmAppointment(ctx context.Context, appointmentID, lockToken string, payment models.PaymentDetails, discount, fees float64) (*models.Appointment, error)
	ReleaseLock(ctx context.Context, lockToken string) error
	CancelHold(ctx context.Context, appointmentID, lockToken string) error
	CancelAppointment(ctx context.Context, appointmentID, reason string) (*models.Appointment, error)
}

// DefaultReservationService implements ReservationService on the Mongo
// appointment repository. All mutations go through the repository's
// conditional operations; this layer never wins a race by luck.
type DefaultReservationService struct {
	Catalog      catalogRepo.CatalogRepository
	Appointments appointmentRepo.AppointmentRepository
	Conflicts    *ConflictChecker
	Notifier     notification.Service
	Travel       TravelEstimator
	LockTTL      time.Duration
	Clock        func() time.Time
}

// NewReservationService wires the service from loaded configuration. The
// travel estimator must be the same one discovery uses so held spans match
// advertised slots.
func NewReservationService(catalog catalogRepo.CatalogRepository, appointments appointmentRepo.AppointmentRepository, notifier notification.Service, travel TravelEstimator) *DefaultReservationService {
	ttl := time.Duration(config.AppConfig.LockTTLMinutes) * time.Minute
	return &DefaultReservationService{
		Catalog:      catalog,
		Appointments: appointments,
		Conflicts:    &ConflictChecker{Appointments: appointments},
		Notifier:     notifier,
		Travel:       travel,
		LockTTL:      ttl,
	}
}

func (s *DefaultReservationService) now() time.Time {
	if s.Clock != nil {
		return s.Clock()
	}
	return time.Now()
}

func (s *DefaultReservationService) ttl() time.Duration {
	if s.LockTTL <= 0 {
		return 10 * time.Minute
	}
	return s.LockTTL
}

func (s *DefaultReservationService) notify(ctx context.Context, appointmentID, event string) {
	if s.Notifier != nil {
		s.Notifier.Notify(ctx, appointmentID, event)
	}
}

// validateDate rejects malformed dates and dates before today. Same-day
// bookings are allowed. ISO dates compare correctly as strings.
func (s *DefaultReservationService) validateDate(date string) error {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return NewInvalidDateError(date)
	}
	if date < s.now().Format("2006-01-02") {
		return NewInvalidDateError(date)
	}
	return nil
}

// AcquireLock validates the request, builds chained service items from the
// catalogue, auto-releases any previous hold the client has with this
// vendor, and inserts the new hold through the transactional overlap
// guard. The fast conflict pre-check exists only to fail cheaply; the
// insert itself is the authority.
func (s *DefaultReservationService) AcquireLock(ctx context.Context, req ReservationRequest) (*LockGrant, error) {
	logger := utils.GetLogger()

	if req.VendorID == "" || req.ClientID == "" {
		return nil, NewClientError("vendorId and clientId are required")
	}
	if err := s.validateDate(req.Date); err != nil {
		return nil, err
	}
	if req.PackageID == "" && len(req.Items) == 0 {
		return nil, NewClientError("at least one service item is required")
	}
	if req.BufferBefore < 0 || req.BufferAfter < 0 {
		return nil, NewClientError("buffers cannot be negative")
	}

	vendor, err := s.Catalog.GetVendorByID(ctx, req.VendorID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch vendor: %w", err)
	}
	if vendor == nil || !vendor.Active {
		return nil, NewVendorNotFoundError(req.VendorID)
	}

	items, total, err := s.buildServiceItems(ctx, req)
	if err != nil {
		return nil, err
	}
	s.padItems(ctx, *vendor, req, items)
	if req.Start < 0 || items[len(items)-1].End > 24*60 {
		return nil, NewClientError("requested time range falls outside the day")
	}

	now := s.now()

	// One live hold per (client, vendor): a fresh acquire supersedes the
	// previous one rather than stacking.
	prior, err := s.Appointments.FindActiveHoldByClient(ctx, req.ClientID, req.VendorID, now)
	if err != nil {
		return nil, fmt.Errorf("failed to check for prior hold: %w", err)
	}
	if prior != nil {
		logger.Info("auto-releasing superseded hold",
			zap.String("clientID", req.ClientID),
			zap.String("vendorID", req.VendorID),
			zap.String("priorAppointmentID", prior.ID))
		if err := s.Appointments.DeleteHold(ctx, prior.ID); err != nil {
			return nil, fmt.Errorf("failed to release prior hold: %w", err)
		}
		s.notify(ctx, prior.ID, notification.EventHoldAutoReleased)
	}

	conflict, err := s.Conflicts.CheckConflict(ctx, req.VendorID, req.Date, items)
	if err != nil {
		return nil, err
	}
	if conflict != nil {
		return nil, NewSlotConflictError()
	}

	hold := &models.Appointment{
		ID:             uuid.NewString(),
		VendorID:       req.VendorID,
		ClientID:       req.ClientID,
		PackageID:      req.PackageID,
		Date:           req.Date,
		Start:          items[0].Start,
		End:            items[len(items)-1].End,
		Status:         models.StatusTempLocked,
		LockToken:      uuid.NewString(),
		LockExpiration: now.Add(s.ttl()),
		ServiceItems:   items,
		TotalAmount:    total,
		HomeService:    req.HomeService,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := ViolationsError(ValidateAppointment(*hold)); err != nil {
		return nil, err
	}

	if err := s.Appointments.InsertHoldIfFree(ctx, hold, now); err != nil {
		if errors.Is(err, appointmentRepo.ErrSlotTaken) {
			return nil, NewSlotConflictError()
		}
		return nil, fmt.Errorf("failed to insert hold: %w", err)
	}

	logger.Info("hold acquired",
		zap.String("appointmentID", hold.ID),
		zap.String("vendorID", hold.VendorID),
		zap.String("date", hold.Date),
		zap.Int("start", hold.Start),
		zap.Int("end", hold.End),
		zap.Time("expiresAt", hold.LockExpiration))

	return &LockGrant{
		AppointmentID: hold.ID,
		LockToken:     hold.LockToken,
		ExpiresAt:     hold.LockExpiration,
		TotalAmount:   hold.TotalAmount,
	}, nil
}

// padItems folds the request's buffers and, for home service, round-trip
// travel into the chained items: lead time widens the first item, tail
// time the last. The hold then occupies the same [start,end) span the
// discovered slot advertised, so nobody can lock the staff member's
// travel or buffer minutes out from under the booking.
func (s *DefaultReservationService) padItems(ctx context.Context, vendor models.Vendor, req ReservationRequest, items []models.ServiceItem) {
	head, tail := req.BufferBefore, req.BufferAfter
	if req.HomeService && req.Location != nil && s.Travel != nil {
		est := s.Travel.Estimate(ctx, vendor, *req.Location)
		head += est.TimeInMinutes
		tail += est.TimeInMinutes
	}
	if head > 0 {
		items[0].End += head
		items[0].TotalDurationMinutes += head
		for i := 1; i < len(items); i++ {
			items[i].Start += head
			items[i].End += head
		}
	}
	if tail > 0 {
		items[len(items)-1].End += tail
		items[len(items)-1].TotalDurationMinutes += tail
	}
}

// buildServiceItems resolves the requested services (or package
// components) against the catalogue and chains them back to back from the
// request's anchor start. Every duration and price passes through the
// normalizer here; nothing downstream touches raw catalogue values.
func (s *DefaultReservationService) buildServiceItems(ctx context.Context, req ReservationRequest) ([]models.ServiceItem, float64, error) {
	if req.PackageID != "" {
		return s.buildPackageItems(ctx, req)
	}

	serviceIDs := make([]string, 0, len(req.Items))
	addOnIDs := make([]string, 0)
	for _, it := range req.Items {
		serviceIDs = append(serviceIDs, it.ServiceID)
		addOnIDs = append(addOnIDs, it.AddOnIDs...)
	}

	services, err := s.Catalog.GetServicesByIDs(ctx, serviceIDs)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch services: %w", err)
	}
	serviceByID := make(map[string]models.ServiceOffering, len(services))
	for _, svc := range services {
		serviceByID[svc.ID] = svc
	}

	addOnByID := make(map[string]models.AddOn)
	if len(addOnIDs) > 0 {
		addOns, err := s.Catalog.GetAddOnsByIDs(ctx, addOnIDs)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to fetch add-ons: %w", err)
		}
		for _, a := range addOns {
			addOnByID[a.ID] = a
		}
	}

	staffByID := make(map[string]*models.Staff)

	items := make([]models.ServiceItem, 0, len(req.Items))
	cursor := req.Start
	var total float64
	for _, it := range req.Items {
		svc, ok := serviceByID[it.ServiceID]
		if !ok || !svc.Active {
			return nil, 0, NewClientError(fmt.Sprintf("service %s not found", it.ServiceID))
		}
		if svc.VendorID != req.VendorID {
			return nil, 0, NewClientError(fmt.Sprintf("service %s does not belong to vendor %s", it.ServiceID, req.VendorID))
		}

		staff, ok := staffByID[it.StaffID]
		if !ok {
			staff, err = s.Catalog.GetStaffByID(ctx, it.StaffID)
			if err != nil {
				return nil, 0, fmt.Errorf("failed to fetch staff: %w", err)
			}
			staffByID[it.StaffID] = staff
		}
		if staff == nil || !staff.Active || staff.VendorID != req.VendorID {
			return nil, 0, NewAppointmentNotFoundErrorForStaff(it.StaffID)
		}
		if !staff.QualifiedFor([]string{it.ServiceID}) {
			return nil, 0, NewClientError(fmt.Sprintf("staff %s is not qualified for service %s", it.StaffID, it.ServiceID))
		}

		base := ParseDuration(svc.Duration)
		amount := SafeAmount(svc.Price)
		totalMins := base
		var addOns []models.AddOnItem
		for _, id := range it.AddOnIDs {
			a, ok := addOnByID[id]
			if !ok {
				return nil, 0, NewClientError(fmt.Sprintf("add-on %s not found", id))
			}
			if a.ServiceID != it.ServiceID {
				return nil, 0, NewClientError(fmt.Sprintf("add-on %s does not extend service %s", id, it.ServiceID))
			}
			d := ParseDuration(a.Duration)
			p := SafeAmount(a.Price)
			totalMins += d
			amount += p
			addOns = append(addOns, models.AddOnItem{
				AddOnID:         a.ID,
				Name:            a.Name,
				DurationMinutes: d,
				Price:           p,
			})
		}
		if totalMins <= 0 {
			return nil, 0, NewClientError(fmt.Sprintf("service %s has no usable duration", it.ServiceID))
		}

		items = append(items, models.ServiceItem{
			ServiceID:            svc.ID,
			ServiceName:          svc.Name,
			StaffID:              staff.ID,
			StaffName:            staff.Name,
			Start:                cursor,
			End:                  cursor + totalMins,
			BaseDurationMinutes:  base,
			TotalDurationMinutes: totalMins,
			Amount:               amount,
			AddOns:               addOns,
		})
		cursor += totalMins
		total += amount
	}
	return items, total, nil
}

// buildPackageItems expands a wedding package into chained items, one per
// component, each on its assigned staff member.
func (s *DefaultReservationService) buildPackageItems(ctx context.Context, req ReservationRequest) ([]models.ServiceItem, float64, error) {
	pkg, err := s.Catalog.GetWeddingPackageByID(ctx, req.PackageID)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch package: %w", err)
	}
	if pkg == nil || !pkg.Active || pkg.VendorID != req.VendorID {
		return nil, 0, NewPackageNotFoundError(req.PackageID)
	}
	if err := ViolationsError(ValidateWeddingPackage(*pkg)); err != nil {
		return nil, 0, err
	}

	serviceIDs := make([]string, 0, len(pkg.Components))
	for _, c := range pkg.Components {
		serviceIDs = append(serviceIDs, c.ServiceID)
	}
	services, err := s.Catalog.GetServicesByIDs(ctx, serviceIDs)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch package services: %w", err)
	}
	serviceByID := make(map[string]models.ServiceOffering, len(services))
	for _, svc := range services {
		serviceByID[svc.ID] = svc
	}

	items := make([]models.ServiceItem, 0, len(pkg.Components))
	cursor := req.Start
	var total float64
	for _, c := range pkg.Components {
		svc, ok := serviceByID[c.ServiceID]
		if !ok {
			return nil, 0, NewClientError(fmt.Sprintf("package component service %s not found", c.ServiceID))
		}

		staff, err := s.Catalog.GetStaffByID(ctx, c.StaffID)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to fetch component staff: %w", err)
		}
		if staff == nil || !staff.Active {
			return nil, 0, NewAppointmentNotFoundErrorForStaff(c.StaffID)
		}

		d := componentMinutes(c, svc)
		if d <= 0 {
			return nil, 0, NewClientError(fmt.Sprintf("package component %s has no usable duration", c.ServiceID))
		}
		amount := SafeAmount(c.Price)

		items = append(items, models.ServiceItem{
			ServiceID:            svc.ID,
			ServiceName:          svc.Name,
			StaffID:              staff.ID,
			StaffName:            staff.Name,
			Start:                cursor,
			End:                  cursor + d,
			BaseDurationMinutes:  d,
			TotalDurationMinutes: d,
			Amount:               amount,
		})
		cursor += d
		total += amount
	}

	// A priced package overrides the component sum.
	if pkgPrice := SafeAmount(pkg.TotalPrice); pkgPrice > 0 {
		total = pkgPrice
	}
	return items, total, nil
}

// ConfirmAppointment promotes a live hold to a confirmed appointment. The
// repository filter is the atomicity boundary; on a miss this method only
// classifies why, it never retries the write.
func (s *DefaultReservationService) ConfirmAppointment(ctx context.Context, appointmentID, lockToken string, payment models.PaymentDetails, discount, fees float64) (*models.Appointment, error) {
	now := s.now()

	appt, err := s.Appointments.ConfirmHold(ctx, appointmentID, lockToken, now, payment, discount, fees)
	if err == nil {
		utils.GetLogger().Info("hold confirmed",
			zap.String("appointmentID", appt.ID),
			zap.String("vendorID", appt.VendorID))
		s.notify(ctx, appt.ID, notification.EventConfirmed)
		return appt, nil
	}
	if !errors.Is(err, appointmentRepo.ErrNoMatch) {
		return nil, fmt.Errorf("failed to confirm hold: %w", err)
	}

	// The conditional update missed; look at the record to say why.
	existing, lookupErr := s.Appointments.GetByID(ctx, appointmentID)
	if lookupErr != nil {
		return nil, fmt.Errorf("failed to classify confirm miss: %w", lookupErr)
	}
	// Token mismatch wins over expiry so a wrong token learns nothing about
	// the record's state.
	switch {
	case existing == nil:
		return nil, NewAppointmentNotFoundError(appointmentID)
	case existing.LockToken != lockToken:
		return nil, NewInvalidLockTokenError()
	case existing.Status == models.StatusTempLocked && !now.Before(existing.LockExpiration):
		return nil, NewLockExpiredError()
	default:
		return nil, NewInvalidLockTokenError()
	}
}

// ReleaseLock drops the hold identified by the token. Releasing a token
// that no longer matches a live hold is a no-op, so clients may retry
// freely.
func (s *DefaultReservationService) ReleaseLock(ctx context.Context, lockToken string) error {
	if lockToken == "" {
		return NewClientError("lock token is required")
	}
	hold, err := s.Appointments.FindHoldByToken(ctx, lockToken)
	if err != nil {
		return fmt.Errorf("failed to look up hold: %w", err)
	}
	if hold == nil {
		return nil
	}
	if err := s.Appointments.DeleteHold(ctx, hold.ID); err != nil {
		return fmt.Errorf("failed to release hold: %w", err)
	}
	utils.GetLogger().Info("hold released",
		zap.String("appointmentID", hold.ID),
		zap.String("vendorID", hold.VendorID))
	s.notify(ctx, hold.ID, notification.EventHoldReleased)
	return nil
}

// CancelHold drops a hold addressed by appointment id, requiring the
// matching token.
func (s *DefaultReservationService) CancelHold(ctx context.Context, appointmentID, lockToken string) error {
	appt, err := s.Appointments.GetByID(ctx, appointmentID)
	if err != nil {
		return fmt.Errorf("failed to fetch appointment: %w", err)
	}
	if appt == nil {
		return NewAppointmentNotFoundError(appointmentID)
	}
	if appt.Status != models.StatusTempLocked {
		return NewClientError("appointment is not a hold; use cancel instead")
	}
	if appt.LockToken != lockToken {
		return NewInvalidLockTokenError()
	}
	if err := s.Appointments.DeleteHold(ctx, appointmentID); err != nil {
		return fmt.Errorf("failed to delete hold: %w", err)
	}
	s.notify(ctx, appointmentID, notification.EventHoldReleased)
	return nil
}

// CancelAppointment cancels a durable appointment (soft status flip) or
// drops a still-live hold. Cancelling an already-cancelled appointment is
// idempotent.
func (s *DefaultReservationService) CancelAppointment(ctx context.Context, appointmentID, reason string) (*models.Appointment, error) {
	appt, err := s.Appointments.GetByID(ctx, appointmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch appointment: %w", err)
	}
	if appt == nil {
		return nil, NewAppointmentNotFoundError(appointmentID)
	}

	switch appt.Status {
	case models.StatusCancelled:
		return appt, nil
	case models.StatusCompleted:
		return nil, NewClientError("completed appointment cannot be cancelled")
	case models.StatusTempLocked:
		if err := s.Appointments.DeleteHold(ctx, appointmentID); err != nil {
			return nil, fmt.Errorf("failed to delete hold: %w", err)
		}
		appt.Status = models.StatusCancelled
		appt.CancelReason = reason
		return appt, nil
	default:
		updated, err := s.Appointments.UpdateStatus(ctx, appointmentID, models.StatusCancelled, reason)
		if err != nil {
			return nil, fmt.Errorf("failed to cancel appointment: %w", err)
		}
		utils.GetLogger().Info("appointment cancelled",
			zap.String("appointmentID", appointmentID),
			zap.String("reason", reason))
		s.notify(ctx, appointmentID, notification.EventCancelled)
		return updated, nil
	}
}
