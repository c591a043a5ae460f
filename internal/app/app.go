package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/niksmo/storefront/config"
	"github.com/niksmo/storefront/internal/adapter/httphandler"
	"github.com/niksmo/storefront/internal/adapter/kafka"
	"github.com/niksmo/storefront/internal/adapter/media"
	"github.com/niksmo/storefront/internal/adapter/payment"
	"github.com/niksmo/storefront/internal/adapter/storage"
	"github.com/niksmo/storefront/internal/core/service"
	"github.com/niksmo/storefront/pkg/schema"
	"github.com/twmb/franz-go/pkg/sr"
)

type repositories struct {
	catalog   storage.CatalogRepository
	variants  storage.VariantsRepository
	cart      storage.CartRepository
	wishlist  storage.WishlistRepository
	orders    storage.OrdersRepository
	profiles  storage.ProfilesRepository
	addresses storage.AddressesRepository
}

type services struct {
	catalog  service.CatalogService
	cart     service.CartService
	checkout service.CheckoutService
	account  service.AccountService
}

type App struct {
	ctx         context.Context
	cfg         config.Config
	sqldb       storage.SQLDB
	repos       repositories
	orderEvents kafka.OrderEventsProducer
	services    services
	httpServer  httphandler.HTTPServer
}

func New(ctx context.Context, cfg config.Config) *App {
	app := &App{ctx: ctx, cfg: cfg}

	app.initLogger()
	app.initStorage()
	app.initOrderEvents()
	app.initCoreServices()
	app.initHTTPServer()

	return app
}

func (app *App) initLogger() {
	opts := &slog.HandlerOptions{Level: app.cfg.LogLevel}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, opts))
	slog.SetDefault(logger)
}

func (app *App) initStorage() {
	const op = "App.initStorage"

	sqldb, err := storage.NewSQLDB(app.ctx, app.cfg.SQLDB)
	if err != nil {
		app.fallDown(op, err)
	}
	app.sqldb = sqldb

	app.repos = repositories{
		catalog:   storage.NewCatalogRepository(sqldb),
		variants:  storage.NewVariantsRepository(sqldb),
		cart:      storage.NewCartRepository(sqldb),
		wishlist:  storage.NewWishlistRepository(sqldb),
		orders:    storage.NewOrdersRepository(sqldb),
		profiles:  storage.NewProfilesRepository(sqldb),
		addresses: storage.NewAddressesRepository(sqldb),
	}
}

func (app *App) initOrderEvents() {
	const op = "App.initOrderEvents"

	srClient, err := sr.NewClient(sr.URLs(app.cfg.Broker.SchemaRegistryURLs...))
	if err != nil {
		app.fallDown(op, err)
	}

	schemaCreater := schema.NewSchemaCreater(srClient)

	topic := app.cfg.Broker.Topics.OrderEvents
	serde, err := schema.NewSerdeOrderPlacedV1(
		app.ctx,
		schema.SubjectOpt(topic+"-value"),
		schema.SchemaIdentifierOpt(schemaCreater),
	)
	if err != nil {
		app.fallDown(op, err)
	}

	producer, err := kafka.NewOrderEventsProducer(
		kafka.ProducerClientOpt(app.ctx, app.cfg.Broker.SeedBrokers, topic),
		kafka.ProducerEncoderOpt(serde),
	)
	if err != nil {
		app.fallDown(op, err)
	}
	app.orderEvents = producer
}

func (app *App) initCoreServices() {
	const op = "App.initCoreServices"

	gateway := payment.NewGateway(
		app.cfg.Payment.BaseURL, app.cfg.Payment.SecretKey,
	)

	uploader, err := media.NewAvatarStore(
		app.cfg.Media.CloudinaryURL, app.cfg.Media.Folder,
	)
	if err != nil {
		app.fallDown(op, err)
	}

	app.services.catalog = service.NewCatalog(
		app.repos.catalog, app.repos.variants,
	)
	app.services.cart = service.NewCart(
		app.repos.cart, app.repos.wishlist,
		app.repos.catalog, app.repos.variants,
	)
	app.services.checkout = service.NewCheckout(
		app.repos.orders, app.repos.variants, app.repos.catalog,
		app.repos.profiles, gateway, app.orderEvents,
		service.PaymentConfig{
			Currency:    app.cfg.Payment.Currency,
			CallbackURL: app.cfg.Payment.CallbackURL,
		},
	)
	app.services.account = service.NewAccount(
		app.repos.profiles, app.repos.addresses, uploader,
	)
}

func (app *App) initHTTPServer() {
	mux := http.NewServeMux()
	httphandler.RegisterCatalog(mux, app.services.catalog)
	httphandler.RegisterCart(mux, app.services.cart, app.services.cart)
	httphandler.RegisterCheckout(mux, app.services.checkout, app.services.checkout)
	httphandler.RegisterAccount(mux, app.services.account)
	httphandler.RegisterAdmin(mux, app.services.catalog)

	handler := httphandler.CORS(
		app.cfg.CORS.AllowOrigin, httphandler.AllowJSON(mux),
	)
	app.httpServer = httphandler.NewHTTPServer(app.cfg.HTTPServerAddr, handler)
}

func (app *App) Run(stopFn context.CancelFunc) {
	go app.httpServer.Run(stopFn)

	slog.Info("application is running")
}

func (app *App) Close(ctx context.Context) {
	slog.Info("application is closing...")

	app.httpServer.Close(ctx)
	app.orderEvents.Close()
	app.sqldb.Close()

	slog.Info("application is closed")
}

func (app *App) fallDown(op string, err error) {
	panic(fmt.Errorf("%s: %w", op, err))
}
