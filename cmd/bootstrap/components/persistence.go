package components

import (
	"fieldserve/internal/infra/db"
	"fieldserve/internal/infra/readstore"
	"fieldserve/internal/infra/uow"
	"fieldserve/internal/usecase/commands"
	"fieldserve/internal/usecase/queries"
	"fieldserve/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		NewDBTX,
		fx.Annotate(
			uow.NewPostgresUoW,
			fx.As(new(shared.UnitOfWork)),
		),
		fx.Annotate(
			readstore.NewReservationReadStore,
			fx.As(new(queries.ReservationReadStore)),
		),
		fx.Annotate(
			readstore.NewPartyReadStore,
			fx.As(new(commands.PartyResolver)),
		),
	),
)

func NewDBTX(pool *pgxpool.Pool) db.DBTX {
	return pool
}
