package application

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/harshachandimal/vehicle-service-ecosystem/internal/domain"
	bookingDomain "github.com/harshachandimal/vehicle-service-ecosystem/internal/domain/booking"
	invoiceDomain "github.com/harshachandimal/vehicle-service-ecosystem/internal/domain/invoice"
	providerDomain "github.com/harshachandimal/vehicle-service-ecosystem/internal/domain/provider"
	userDomain "github.com/harshachandimal/vehicle-service-ecosystem/internal/domain/user"
	vehicleDomain "github.com/harshachandimal/vehicle-service-ecosystem/internal/domain/vehicle"
	"github.com/harshachandimal/vehicle-service-ecosystem/internal/events"
)

// --- users ---

type fakeUserRepo struct {
	users map[uuid.UUID]*userDomain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*userDomain.User)}
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*userDomain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.NewNotFoundError("User", id.String())
	}
	return u, nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*userDomain.User, error) {
	for _, u := range r.users {
		if u.Email() == email {
			return u, nil
		}
	}
	return nil, domain.NewNotFoundError("User", email)
}

func (r *fakeUserRepo) FindByResetTokenHash(_ context.Context, tokenHash string) (*userDomain.User, error) {
	for _, u := range r.users {
		if u.ResetTokenHash() != "" && u.ResetTokenHash() == tokenHash {
			return u, nil
		}
	}
	return nil, domain.NewNotFoundError("User", "reset token")
}

func (r *fakeUserRepo) Save(_ context.Context, u *userDomain.User) error {
	for _, existing := range r.users {
		if existing.Email() == u.Email() {
			return domain.NewConflictError("user with this email already exists")
		}
	}
	r.users[u.ID()] = u
	return nil
}

func (r *fakeUserRepo) Update(_ context.Context, u *userDomain.User) error {
	if _, ok := r.users[u.ID()]; !ok {
		return domain.NewNotFoundError("User", u.ID().String())
	}
	r.users[u.ID()] = u
	return nil
}

// --- provisioner ---

type fakeProvisioner struct {
	users       *fakeUserRepo
	providers   *fakeProviderRepo
	failProfile bool
}

func (p *fakeProvisioner) CreateProviderAccount(ctx context.Context, u *userDomain.User, profile *providerDomain.Profile) error {
	if err := p.users.Save(ctx, u); err != nil {
		return err
	}
	if p.failProfile {
		// All-or-nothing: roll the user insert back.
		delete(p.users.users, u.ID())
		return errors.New("profile insert failed")
	}
	p.providers.profiles[profile.ID()] = profile
	return nil
}

// --- vehicles ---

type fakeVehicleRepo struct {
	vehicles map[uuid.UUID]*vehicleDomain.Vehicle
}

func newFakeVehicleRepo() *fakeVehicleRepo {
	return &fakeVehicleRepo{vehicles: make(map[uuid.UUID]*vehicleDomain.Vehicle)}
}

func (r *fakeVehicleRepo) FindByID(_ context.Context, id uuid.UUID) (*vehicleDomain.Vehicle, error) {
	v, ok := r.vehicles[id]
	if !ok {
		return nil, domain.NewNotFoundError("Vehicle", id.String())
	}
	return v, nil
}

func (r *fakeVehicleRepo) FindByOwnerID(_ context.Context, ownerID uuid.UUID) ([]*vehicleDomain.Vehicle, error) {
	var result []*vehicleDomain.Vehicle
	for _, v := range r.vehicles {
		if v.IsOwnedBy(ownerID) {
			result = append(result, v)
		}
	}
	return result, nil
}

func (r *fakeVehicleRepo) Save(_ context.Context, v *vehicleDomain.Vehicle) error {
	r.vehicles[v.ID()] = v
	return nil
}

func (r *fakeVehicleRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.vehicles[id]; !ok {
		return domain.NewNotFoundError("Vehicle", id.String())
	}
	delete(r.vehicles, id)
	return nil
}

// --- bookings ---

type fakeBookingRepo struct {
	bookings map[uuid.UUID]*bookingDomain.Booking
	owners   map[uuid.UUID]uuid.UUID // booking ID -> vehicle owner ID
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{
		bookings: make(map[uuid.UUID]*bookingDomain.Booking),
		owners:   make(map[uuid.UUID]uuid.UUID),
	}
}

func (r *fakeBookingRepo) FindByID(_ context.Context, id uuid.UUID) (*bookingDomain.Booking, error) {
	bk, ok := r.bookings[id]
	if !ok {
		return nil, domain.NewNotFoundError("Booking", id.String())
	}
	return bk, nil
}

func (r *fakeBookingRepo) FindDetailsByOwner(_ context.Context, ownerID uuid.UUID, _, _ int) ([]bookingDomain.Details, int64, error) {
	var result []bookingDomain.Details
	for id, bk := range r.bookings {
		if r.owners[id] == ownerID {
			result = append(result, bookingDomain.Details{Booking: bk, VehicleOwnerID: ownerID})
		}
	}
	return result, int64(len(result)), nil
}

func (r *fakeBookingRepo) FindDetailsByProvider(_ context.Context, providerID uuid.UUID, _, _ int) ([]bookingDomain.Details, int64, error) {
	var result []bookingDomain.Details
	for id, bk := range r.bookings {
		if bk.IsAssignedTo(providerID) {
			result = append(result, bookingDomain.Details{Booking: bk, VehicleOwnerID: r.owners[id]})
		}
	}
	return result, int64(len(result)), nil
}

func (r *fakeBookingRepo) Save(_ context.Context, bk *bookingDomain.Booking) error {
	r.bookings[bk.ID()] = bk
	return nil
}

func (r *fakeBookingRepo) Update(_ context.Context, bk *bookingDomain.Booking) error {
	if _, ok := r.bookings[bk.ID()]; !ok {
		return domain.NewNotFoundError("Booking", bk.ID().String())
	}
	r.bookings[bk.ID()] = bk
	return nil
}

// --- invoices ---

type fakeInvoiceRepo struct {
	invoices map[uuid.UUID]*invoiceDomain.Invoice
	details  map[uuid.UUID]invoiceDomain.Details
}

func newFakeInvoiceRepo() *fakeInvoiceRepo {
	return &fakeInvoiceRepo{
		invoices: make(map[uuid.UUID]*invoiceDomain.Invoice),
		details:  make(map[uuid.UUID]invoiceDomain.Details),
	}
}

func (r *fakeInvoiceRepo) FindDetailsByID(_ context.Context, id uuid.UUID) (*invoiceDomain.Details, error) {
	d, ok := r.details[id]
	if !ok {
		return nil, domain.NewNotFoundError("Invoice", id.String())
	}
	return &d, nil
}

func (r *fakeInvoiceRepo) FindByBookingID(_ context.Context, bookingID uuid.UUID) (*invoiceDomain.Invoice, error) {
	for _, inv := range r.invoices {
		if inv.BookingID() == bookingID {
			return inv, nil
		}
	}
	return nil, domain.NewNotFoundError("Invoice", bookingID.String())
}

func (r *fakeInvoiceRepo) FindDetailsByOwner(_ context.Context, ownerID uuid.UUID) ([]invoiceDomain.Details, error) {
	var result []invoiceDomain.Details
	for _, d := range r.details {
		if d.VehicleOwnerID == ownerID {
			result = append(result, d)
		}
	}
	return result, nil
}

func (r *fakeInvoiceRepo) FindDetailsByProvider(_ context.Context, providerID uuid.UUID) ([]invoiceDomain.Details, error) {
	var result []invoiceDomain.Details
	for _, d := range r.details {
		if d.ProviderID == providerID {
			result = append(result, d)
		}
	}
	return result, nil
}

func (r *fakeInvoiceRepo) Save(_ context.Context, inv *invoiceDomain.Invoice) error {
	for _, existing := range r.invoices {
		if existing.BookingID() == inv.BookingID() {
			return domain.NewConflictError("invoice already exists for this booking")
		}
	}
	r.invoices[inv.ID()] = inv
	return nil
}

// seedDetails registers a detail projection for read tests.
func (r *fakeInvoiceRepo) seedDetails(d invoiceDomain.Details) {
	r.invoices[d.Invoice.ID()] = d.Invoice
	r.details[d.Invoice.ID()] = d
}

// --- providers ---

type fakeProviderRepo struct {
	profiles map[uuid.UUID]*providerDomain.Profile
	services map[uuid.UUID]*providerDomain.ServiceItem
}

func newFakeProviderRepo() *fakeProviderRepo {
	return &fakeProviderRepo{
		profiles: make(map[uuid.UUID]*providerDomain.Profile),
		services: make(map[uuid.UUID]*providerDomain.ServiceItem),
	}
}

func (r *fakeProviderRepo) FindProfileByUserID(_ context.Context, userID uuid.UUID) (*providerDomain.Profile, error) {
	for _, p := range r.profiles {
		if p.UserID() == userID {
			return p, nil
		}
	}
	return nil, domain.NewNotFoundError("ProviderProfile", userID.String())
}

func (r *fakeProviderRepo) FindProfileByID(_ context.Context, id uuid.UUID) (*providerDomain.Profile, error) {
	p, ok := r.profiles[id]
	if !ok {
		return nil, domain.NewNotFoundError("ProviderProfile", id.String())
	}
	return p, nil
}

func (r *fakeProviderRepo) FindServiceItems(_ context.Context, profileID uuid.UUID) ([]*providerDomain.ServiceItem, error) {
	var result []*providerDomain.ServiceItem
	for _, item := range r.services {
		if item.ProfileID() == profileID {
			result = append(result, item)
		}
	}
	return result, nil
}

func (r *fakeProviderRepo) FindServiceItemByID(_ context.Context, id uuid.UUID) (*providerDomain.ServiceItem, error) {
	item, ok := r.services[id]
	if !ok {
		return nil, domain.NewNotFoundError("Service", id.String())
	}
	return item, nil
}

func (r *fakeProviderRepo) SaveProfile(_ context.Context, p *providerDomain.Profile) error {
	r.profiles[p.ID()] = p
	return nil
}

func (r *fakeProviderRepo) UpdateProfile(_ context.Context, p *providerDomain.Profile) error {
	if _, ok := r.profiles[p.ID()]; !ok {
		return domain.NewNotFoundError("ProviderProfile", p.ID().String())
	}
	r.profiles[p.ID()] = p
	return nil
}

func (r *fakeProviderRepo) SaveServiceItem(_ context.Context, item *providerDomain.ServiceItem) error {
	r.services[item.ID()] = item
	return nil
}

func (r *fakeProviderRepo) DeleteServiceItem(_ context.Context, id uuid.UUID) error {
	if _, ok := r.services[id]; !ok {
		return domain.NewNotFoundError("Service", id.String())
	}
	delete(r.services, id)
	return nil
}

// --- events ---

type publishedEvent struct {
	Topic string
	Event events.CloudEvent
}

type fakePublisher struct {
	published []publishedEvent
}

func (p *fakePublisher) PublishEvent(_ context.Context, topic string, event events.CloudEvent) error {
	p.published = append(p.published, publishedEvent{Topic: topic, Event: event})
	return nil
}

func (p *fakePublisher) eventsOfType(eventType string) []events.CloudEvent {
	var result []events.CloudEvent
	for _, pe := range p.published {
		if pe.Event.Type == eventType {
			result = append(result, pe.Event)
		}
	}
	return result
}
