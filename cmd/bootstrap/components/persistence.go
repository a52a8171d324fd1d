package components

import (
	"storefront-checkout/internal/domain/inventory"
	"storefront-checkout/internal/handler"
	"storefront-checkout/internal/infra/db"
	"storefront-checkout/internal/infra/repository"
	"storefront-checkout/internal/infra/uow"
	"storefront-checkout/internal/usecase/commands"
	"storefront-checkout/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	baseOption,
	repositoryModule,
)

var baseOption = fx.Provide(
	NewDBTX,
	NewTxBeginner,
	NewHealthChecker,
)

var repositoryModule = fx.Module("persistence/repository",
	fx.Provide(
		// UnitOfWork
		fx.Annotate(
			uow.NewPostgresUoW,
			fx.As(new(shared.UnitOfWork)),
		),
		// Catalog
		fx.Annotate(
			repository.NewCatalogRepository,
			fx.As(new(commands.CatalogReader)),
		),
		// Discount
		fx.Annotate(
			repository.NewDiscountRepository,
			fx.As(new(commands.DiscountReader)),
		),
		// Order
		fx.Annotate(
			repository.NewOrderRepository,
			fx.As(new(commands.OrderHistoryReader)),
		),
		// Profile
		fx.Annotate(
			repository.NewProfileRepository,
			fx.As(new(commands.CustomerStore)),
		),
		// Reservation
		fx.Annotate(
			repository.NewReservationRepository,
			fx.As(new(inventory.Store)),
			fx.As(new(commands.ExpiredReservationReleaser)),
		),
	),
)

func NewDBTX(pool *pgxpool.Pool) db.DBTX {
	return pool
}

func NewTxBeginner(pool *pgxpool.Pool) uow.TxBeginner {
	return pool
}

func NewHealthChecker(pool *pgxpool.Pool) handler.HealthChecker {
	return pool
}
