package console

import (
	"github.com/rs/zerolog"

	"github.com/barberbook/admin-console/internal/core/domain"
	"github.com/barberbook/admin-console/internal/infrastructure/rest"
)

// Screens bundles one list controller and one typed resource handle per
// dashboard screen. Every screen follows the identical
// list-filter-paginate pattern; only the element type and path differ.
type Screens struct {
	Bookings  *ListController[domain.Booking]
	Customers *ListController[domain.Customer]
	Payments  *ListController[domain.Payment]
	Reviews   *ListController[domain.Review]
	Services  *ListController[domain.Service]
	Stylists  *ListController[domain.Stylist]

	BookingAPI  *rest.Resource[domain.Booking]
	CustomerAPI *rest.Resource[domain.Customer]
	PaymentAPI  *rest.Resource[domain.Payment]
	ReviewAPI   *rest.Resource[domain.Review]
	ServiceAPI  *rest.Resource[domain.Service]
	StylistAPI  *rest.Resource[domain.Stylist]
}

// NewScreens wires a controller per resource against the REST client. token
// is consulted per request so refreshed credentials apply immediately.
func NewScreens(client *rest.Client, token func() string, log zerolog.Logger) *Screens {
	bookings := rest.NewResource[domain.Booking](client, "/v1/bookings", token)
	customers := rest.NewResource[domain.Customer](client, "/v1/customers", token)
	payments := rest.NewResource[domain.Payment](client, "/v1/payments", token)
	reviews := rest.NewResource[domain.Review](client, "/v1/reviews", token)
	services := rest.NewResource[domain.Service](client, "/v1/services", token)
	stylists := rest.NewResource[domain.Stylist](client, "/v1/stylists", token)

	return &Screens{
		Bookings:  NewListController(bookings.FetchPage, func(b domain.Booking) string { return b.ID }, log),
		Customers: NewListController(customers.FetchPage, func(c domain.Customer) string { return c.ID }, log),
		Payments:  NewListController(payments.FetchPage, func(p domain.Payment) string { return p.ID }, log),
		Reviews:   NewListController(reviews.FetchPage, func(r domain.Review) string { return r.ID }, log),
		Services:  NewListController(services.FetchPage, func(s domain.Service) string { return s.ID }, log),
		Stylists:  NewListController(stylists.FetchPage, func(s domain.Stylist) string { return s.ID }, log),

		BookingAPI:  bookings,
		CustomerAPI: customers,
		PaymentAPI:  payments,
		ReviewAPI:   reviews,
		ServiceAPI:  services,
		StylistAPI:  stylists,
	}
}
