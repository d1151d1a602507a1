package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/flexirent/flexirent-client/config"
	"github.com/flexirent/flexirent-client/internal/api"
	"github.com/flexirent/flexirent-client/internal/credstore"
	"github.com/flexirent/flexirent-client/internal/domain"
	"github.com/flexirent/flexirent-client/internal/gateway"
	"github.com/flexirent/flexirent-client/internal/session"
	"github.com/flexirent/flexirent-client/internal/state"
	"github.com/flexirent/flexirent-client/internal/view"
)

type app struct {
	sess       *session.Store
	store      *state.Store
	auth       *api.AuthClient
	properties *api.PropertiesClient
	bookings   *api.BookingsClient
	users      *api.UsersClient
}

func main() {
	_ = godotenv.Load()

	cmd := flag.String("cmd", "properties", "Command: login|register|logout|whoami|properties|search|property|book|bookings|respond|my-properties|add-property|update-property|set-availability|remove-property|users|set-role|remove-user")
	username := flag.String("username", "", "Username for login")
	password := flag.String("password", "", "Password for login")
	id := flag.Int64("id", 0, "Resource ID")
	start := flag.String("start", "", "Booking start date (YYYY-MM-DD)")
	end := flag.String("end", "", "Booking end date (YYYY-MM-DD)")
	requests := flag.String("requests", "", "Special requests for a booking")
	status := flag.String("status", "", "New booking status")
	role := flag.String("role", "", "New user role")
	city := flag.String("city", "", "Search: city")
	bedrooms := flag.Int("bedrooms", 0, "Search: minimum bedrooms")
	minPrice := flag.Float64("min-price", 0, "Search: minimum monthly price")
	maxPrice := flag.Float64("max-price", 0, "Search: maximum monthly price")
	propType := flag.String("type", "", "Search: property type")
	available := flag.Bool("available", true, "Availability flag for set-availability")
	file := flag.String("file", "", "JSON payload file for add-property/update-property/register")
	flag.Parse()

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}
	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "load config:", err)
		os.Exit(1)
	}

	log := logrus.New()
	if level, err := logrus.ParseLevel(cfg.Logging.Level); err == nil {
		log.SetLevel(level)
	}

	tokenPath, err := cfg.Storage.ResolveTokenPath()
	if err != nil {
		log.Fatalf("resolve token path: %v", err)
	}

	sess := session.NewStore(credstore.NewFileStore(tokenPath), log)
	gw := gateway.New(cfg.API, sess, log, gateway.WithOnUnauthorized(func() {
		sess.Logout()
		fmt.Fprintln(os.Stderr, "Session expired. Run -cmd login to sign in again.")
	}))
	authClient := api.NewAuthClient(gw)
	sess.BindAuth(authClient)

	if err := sess.Hydrate(); err != nil {
		log.WithError(err).Warn("hydrating session failed, continuing logged out")
	}

	propertiesClient := api.NewPropertiesClient(gw)
	bookingsClient := api.NewBookingsClient(gw)

	a := &app{
		sess:       sess,
		auth:       authClient,
		store:      state.NewStore(propertiesClient, bookingsClient),
		properties: propertiesClient,
		bookings:   bookingsClient,
		users:      api.NewUsersClient(gw),
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	switch *cmd {
	case "login":
		err = a.login(ctx, *username, *password)
	case "register":
		err = a.register(ctx, *file)
	case "logout":
		a.sess.Logout()
		fmt.Println("Logged out.")
	case "whoami":
		err = a.whoami()
	case "properties":
		err = a.listProperties(ctx)
	case "search":
		err = a.searchProperties(ctx, domain.PropertySearch{
			City:         *city,
			MinPrice:     *minPrice,
			MaxPrice:     *maxPrice,
			Bedrooms:     *bedrooms,
			PropertyType: domain.PropertyType(*propType),
		})
	case "property":
		err = a.showProperty(ctx, *id, *start, *end)
	case "book":
		err = a.book(ctx, *id, *start, *end, *requests)
	case "bookings":
		err = a.listBookings(ctx)
	case "respond":
		err = a.respond(ctx, *id, domain.BookingStatus(*status))
	case "my-properties":
		err = a.myProperties(ctx)
	case "add-property":
		err = a.saveProperty(ctx, 0, *file)
	case "update-property":
		err = a.saveProperty(ctx, *id, *file)
	case "set-availability":
		err = a.setAvailability(ctx, *id, *available)
	case "remove-property":
		err = a.removeProperty(ctx, *id)
	case "users":
		err = a.listUsers(ctx)
	case "set-role":
		err = a.setRole(ctx, *id, domain.Role(*role))
	case "remove-user":
		err = a.removeUser(ctx, *id)
	default:
		err = fmt.Errorf("unknown command %q", *cmd)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func (a *app) login(ctx context.Context, username, password string) error {
	if username == "" || password == "" {
		return fmt.Errorf("-username and -password are required")
	}
	sess, err := a.sess.Login(ctx, username, password)
	if err != nil {
		return err
	}
	fmt.Printf("Welcome %s (%s)\n", sess.User.Username, sess.User.Role)
	return nil
}

func (a *app) register(ctx context.Context, file string) error {
	var req api.SignUpRequest
	if err := readPayload(file, &req); err != nil {
		return err
	}
	if err := api.Validate(req); err != nil {
		return err
	}
	if err := a.auth.SignUp(ctx, req); err != nil {
		return err
	}
	fmt.Printf("Account %s created. Run -cmd login to sign in.\n", req.Username)
	return nil
}

func (a *app) whoami() error {
	sess := a.sess.Session()
	if !sess.Authenticated() {
		fmt.Println("Not logged in.")
		return nil
	}
	fmt.Printf("%s <%s> role=%s\n", sess.User.Username, sess.User.Email, sess.User.Role)
	return nil
}

func (a *app) listProperties(ctx context.Context) error {
	if err := a.store.FetchProperties(ctx); err != nil {
		return err
	}
	printProperties(a.store.Properties.Data())
	return nil
}

func (a *app) searchProperties(ctx context.Context, filters domain.PropertySearch) error {
	a.store.UpdateSearchFilters(filters)
	if err := a.store.SearchProperties(ctx, filters); err != nil {
		return err
	}
	printProperties(a.store.Properties.Data())
	return nil
}

func (a *app) showProperty(ctx context.Context, id int64, start, end string) error {
	if id == 0 {
		return fmt.Errorf("-id is required")
	}
	prop, err := a.properties.Get(ctx, id)
	if err != nil {
		return err
	}
	a.store.SetCurrentProperty(prop)

	fmt.Printf("%s — %s, %s, %s\n", prop.Title, prop.Address, prop.City, prop.State)
	fmt.Printf("$%.2f/month, %d bd / %d ba, %d sqft, %s\n", prop.PricePerMonth, prop.Bedrooms, prop.Bathrooms, prop.AreaSqft, prop.PropertyType)
	if !view.CanBook(*prop) {
		fmt.Println("Currently not available.")
		return nil
	}

	if start != "" && end != "" {
		startDate, endDate, err := parseRange(start, end)
		if err != nil {
			return err
		}
		free, err := a.bookings.CheckAvailability(ctx, id, startDate, endDate)
		if err != nil {
			return err
		}
		estimate, err := view.EstimateTotalAmount(startDate, endDate, prop.PricePerMonth)
		if err != nil {
			return err
		}
		fmt.Printf("Range %s..%s free=%t, estimated total $%.2f\n", startDate, endDate, free, estimate)
	}
	return nil
}

func (a *app) book(ctx context.Context, id int64, start, end, requests string) error {
	user, ok := a.sess.Identity()
	if !ok {
		return fmt.Errorf("log in before booking")
	}
	if id == 0 {
		return fmt.Errorf("-id is required")
	}
	startDate, endDate, err := parseRange(start, end)
	if err != nil {
		return err
	}

	prop, err := a.properties.Get(ctx, id)
	if err != nil {
		return err
	}
	if !view.CanBook(*prop) {
		return fmt.Errorf("property %d is not available", id)
	}

	total, err := view.EstimateTotalAmount(startDate, endDate, prop.PricePerMonth)
	if err != nil {
		return err
	}

	req := api.BookingRequest{
		PropertyID:      prop.ID,
		TenantID:        user.ID,
		LandlordID:      prop.LandlordID,
		StartDate:       startDate,
		EndDate:         endDate,
		TotalAmount:     total,
		SpecialRequests: requests,
	}
	if err := api.Validate(req); err != nil {
		return err
	}

	booking, err := a.store.CreateBooking(ctx, req)
	if err != nil {
		return err
	}
	fmt.Printf("Booking %d created (%s), total $%.2f\n", booking.ID, booking.Status, booking.TotalAmount)
	return nil
}

func (a *app) listBookings(ctx context.Context) error {
	user, ok := a.sess.Identity()
	if !ok {
		return fmt.Errorf("log in to see bookings")
	}

	var err error
	switch {
	case view.CanAccessAdmin(user):
		err = a.store.FetchAllBookings(ctx)
	case view.CanManageProperties(user):
		err = a.store.FetchLandlordBookings(ctx, user.ID)
	default:
		err = a.store.FetchTenantBookings(ctx, user.ID)
	}
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tPROPERTY\tFROM\tTO\tTOTAL\tSTATUS")
	for _, b := range a.store.Bookings.Data() {
		fmt.Fprintf(w, "%d\t%d\t%s\t%s\t$%.2f\t%s\n", b.ID, b.PropertyID, b.StartDate, b.EndDate, b.TotalAmount, b.Status)
	}
	return w.Flush()
}

func (a *app) respond(ctx context.Context, id int64, status domain.BookingStatus) error {
	user, ok := a.sess.Identity()
	if !ok {
		return fmt.Errorf("log in first")
	}
	if id == 0 || status == "" {
		return fmt.Errorf("-id and -status are required")
	}

	booking, err := a.bookings.Get(ctx, id)
	if err != nil {
		return err
	}
	if !view.CanRespondToBooking(user, *booking, status) {
		return fmt.Errorf("cannot move booking %d from %s to %s as %s", id, booking.Status, status, user.Role)
	}

	updated, err := a.bookings.UpdateStatus(ctx, id, status)
	if err != nil {
		return err
	}
	fmt.Printf("Booking %d is now %s\n", updated.ID, updated.Status)
	return a.listBookings(ctx)
}

func (a *app) myProperties(ctx context.Context) error {
	user, ok := a.sess.Identity()
	if !ok || !view.CanManageProperties(user) {
		return fmt.Errorf("landlord account required")
	}
	props, err := a.properties.ListByLandlord(ctx, user.ID)
	if err != nil {
		return err
	}
	printProperties(props)
	return nil
}

func (a *app) saveProperty(ctx context.Context, id int64, file string) error {
	user, ok := a.sess.Identity()
	if !ok || !view.CanManageProperties(user) {
		return fmt.Errorf("landlord account required")
	}

	var req api.PropertyRequest
	if err := readPayload(file, &req); err != nil {
		return err
	}
	if req.LandlordID == 0 {
		req.LandlordID = user.ID
	}
	if err := api.Validate(req); err != nil {
		return err
	}

	var prop *domain.Property
	var err error
	if id == 0 {
		prop, err = a.properties.Create(ctx, req)
	} else {
		prop, err = a.properties.Update(ctx, id, req)
	}
	if err != nil {
		return err
	}
	fmt.Printf("Saved property %d: %s\n", prop.ID, prop.Title)
	return nil
}

func (a *app) setAvailability(ctx context.Context, id int64, available bool) error {
	user, ok := a.sess.Identity()
	if !ok || !view.CanManageProperties(user) {
		return fmt.Errorf("landlord account required")
	}
	prop, err := a.properties.SetAvailability(ctx, id, available)
	if err != nil {
		return err
	}
	fmt.Printf("Property %d available=%t\n", prop.ID, prop.Available)
	return nil
}

func (a *app) removeProperty(ctx context.Context, id int64) error {
	user, ok := a.sess.Identity()
	if !ok || (!view.CanManageProperties(user) && !view.CanAccessAdmin(user)) {
		return fmt.Errorf("landlord or admin account required")
	}
	if err := a.properties.Delete(ctx, id); err != nil {
		return err
	}
	fmt.Printf("Property %d removed\n", id)
	return nil
}

func (a *app) listUsers(ctx context.Context) error {
	user, ok := a.sess.Identity()
	if !ok || !view.CanAccessAdmin(user) {
		return fmt.Errorf("admin account required")
	}
	users, err := a.users.List(ctx)
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tUSERNAME\tEMAIL\tROLE")
	for _, u := range users {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", u.ID, u.Username, u.Email, u.Role)
	}
	return w.Flush()
}

func (a *app) setRole(ctx context.Context, id int64, role domain.Role) error {
	user, ok := a.sess.Identity()
	if !ok || !view.CanAccessAdmin(user) {
		return fmt.Errorf("admin account required")
	}
	if err := a.users.UpdateRole(ctx, id, role); err != nil {
		return err
	}
	fmt.Printf("User %d role set to %s\n", id, role)
	return nil
}

func (a *app) removeUser(ctx context.Context, id int64) error {
	user, ok := a.sess.Identity()
	if !ok || !view.CanAccessAdmin(user) {
		return fmt.Errorf("admin account required")
	}
	if err := a.users.Delete(ctx, id); err != nil {
		return err
	}
	fmt.Printf("User %d removed\n", id)
	return nil
}

func parseRange(start, end string) (domain.Date, domain.Date, error) {
	if start == "" || end == "" {
		return domain.Date{}, domain.Date{}, fmt.Errorf("-start and -end are required")
	}
	startDate, err := domain.ParseDate(start)
	if err != nil {
		return domain.Date{}, domain.Date{}, err
	}
	endDate, err := domain.ParseDate(end)
	if err != nil {
		return domain.Date{}, domain.Date{}, err
	}
	if !endDate.After(startDate.Time) {
		return domain.Date{}, domain.Date{}, view.ErrInvalidDateRange
	}
	return startDate, endDate, nil
}

func readPayload(file string, out any) error {
	if file == "" {
		return fmt.Errorf("-file is required")
	}
	data, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("read payload: %w", err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parse payload: %w", err)
	}
	return nil
}

func printProperties(props []domain.Property) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tCITY\tPRICE\tBD\tBA\tTYPE\tAVAILABLE")
	for _, p := range props {
		fmt.Fprintf(w, "%d\t%s\t%s\t$%.0f\t%d\t%d\t%s\t%t\n", p.ID, p.Title, p.City, p.PricePerMonth, p.Bedrooms, p.Bathrooms, p.PropertyType, p.Available)
	}
	w.Flush()
}
