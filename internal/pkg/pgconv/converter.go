package pgconv

import (
	"errors"
	"time"

	"fieldserve/internal/domain/reservation"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const microsPerMinute = 60 * 1_000_000

func IsNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

func TimeOfDayToPgtype(t reservation.TimeOfDay) pgtype.Time {
	micros := int64(t.Hour()*60+t.Minute()) * microsPerMinute
	return pgtype.Time{Microseconds: micros, Valid: true}
}

func TimeOfDayPtrToPgtype(t *reservation.TimeOfDay) pgtype.Time {
	if t == nil {
		return pgtype.Time{}
	}
	return TimeOfDayToPgtype(*t)
}

func TimeOfDayFromPgtype(pt pgtype.Time) reservation.TimeOfDay {
	minutes := int(pt.Microseconds / microsPerMinute)
	t, err := reservation.NewTimeOfDay(minutes/60, minutes%60)
	if err != nil {
		return reservation.TimeOfDay{}
	}
	return t
}

func TimeOfDayPtrFromPgtype(pt pgtype.Time) *reservation.TimeOfDay {
	if !pt.Valid {
		return nil
	}
	t := TimeOfDayFromPgtype(pt)
	return &t
}

func DateToPgtype(t time.Time) pgtype.Date {
	return pgtype.Date{Time: t, Valid: true}
}

func DateFromPgtype(pd pgtype.Date) time.Time {
	return reservation.DateOf(pd.Time)
}

func TimeToPgtype(t time.Time) pgtype.Timestamptz {
	return pgtype.Timestamptz{Time: t, Valid: true}
}

func TimeFromPgtype(pt pgtype.Timestamptz) time.Time {
	return pt.Time
}

func StringPtrFromPgtype(pt pgtype.Text) *string {
	if !pt.Valid {
		return nil
	}
	return &pt.String
}
