package database

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/iliyamo/laiff-festival/internal/model"
)

// Seed loads the sample festival programme into an empty store.  It does
// nothing when festival_movies already has rows.  Relative timestamps of
// notifications, broadcasts and activity are anchored at now.
func Seed(ctx context.Context, db *sqlx.DB, now time.Time) (bool, error) {
	var n int
	if err := db.GetContext(ctx, &n, `SELECT COUNT(*) FROM festival_movies`); err != nil {
		return false, fmt.Errorf("seed: count movies: %w", err)
	}
	if n > 0 {
		return false, nil
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer tx.Rollback() //nolint:errcheck

	ts := now.Unix()
	ago := func(d time.Duration) int64 { return now.Add(-d).Unix() }

	deadly := uuid.NewString()
	darkness := uuid.NewString()
	movies := []model.FestivalMovie{
		{ID: deadly, TMDBID: 123, Title: "Deadly Vows", Director: "Jared Cohn", Year: 2024, Genre: "Thriller",
			Runtime: 95, Synopsis: "A gripping thriller about secrets and betrayal.", Rating: 7.2,
			PriceCents: 1500, Status: model.MovieActive, FestivalCategory: "Main Competition", Notes: "Opening night film"},
		{ID: darkness, Title: "Where Darkness Dwells", Director: "Michael May", Year: 2024, Genre: "Horror",
			Runtime: 102, Synopsis: "A haunting tale of supernatural terror.", Rating: 6.8,
			PriceCents: 1500, Status: model.MovieActive, FestivalCategory: "Horror/Sci-Fi", Notes: "Saturday night feature"},
	}
	for i := range movies {
		movies[i].CreatedAt, movies[i].UpdatedAt = ts, ts
	}

	showtimes := []model.Showtime{
		{MovieID: deadly, MovieTitle: "Deadly Vows", Date: "2025-11-14", Time: "19:30", Venue: "Million Dollar Theatre",
			Screen: "Main Theatre", Capacity: 200, Sold: 145, PriceCategory: model.PricePremium, Status: model.ShowtimeOnSale,
			Notes: "Opening night film - includes red carpet"},
		{MovieTitle: "Short Block 1", Date: "2025-11-14", Time: "15:30", Venue: "Million Dollar Theatre",
			Screen: "Main Theatre", Capacity: 200, Sold: 78, PriceCategory: model.PriceStandard, Status: model.ShowtimeOnSale},
		{MovieID: darkness, MovieTitle: "Where Darkness Dwells", Date: "2025-11-15", Time: "19:30", Venue: "Million Dollar Theatre",
			Screen: "Main Theatre", Capacity: 200, Sold: 200, PriceCategory: model.PriceStandard, Status: model.ShowtimeSoldOut,
			Notes: "Q&A with director after screening"},
	}
	for i := range showtimes {
		showtimes[i].ID = uuid.NewString()
		showtimes[i].CreatedAt, showtimes[i].UpdatedAt = ts, ts
	}

	tickets := []model.TicketType{
		{Name: "Adult", Description: "General admission for adults", BasePriceCents: 1500, Availability: model.AvailableAll, MaxPerOrder: 10},
		{Name: "Senior", Description: "65 years and older", BasePriceCents: 1500, DiscountPercent: 20, Availability: model.AvailableAll, MaxPerOrder: 4, RequiresID: true},
		{Name: "Student", Description: "Valid student ID required", BasePriceCents: 1500, DiscountPercent: 33, Availability: model.AvailableAll, MaxPerOrder: 2, RequiresID: true},
		{Name: "Member", Description: "Film Club members only", BasePriceCents: 1500, DiscountPercent: 25, Availability: model.AvailableMembers, MaxPerOrder: 4},
	}
	for i := range tickets {
		tickets[i].ID = uuid.NewString()
		tickets[i].Status = model.TicketActive
		tickets[i].Recompute()
		tickets[i].CreatedAt, tickets[i].UpdatedAt = ts, ts
	}

	promos := []model.PromoCode{
		{Code: "LAIFF25", DiscountType: model.DiscountPercent, DiscountValue: 15, UsageLimit: 100, UsageCount: 34,
			ValidFrom: "2025-10-01", ValidUntil: "2025-11-16", Status: model.PromoActive},
		{Code: "OPENING", DiscountType: model.DiscountFixed, DiscountValue: 500, UsageLimit: 50, UsageCount: 50,
			ValidFrom: "2025-11-01", ValidUntil: "2025-11-14", Status: model.PromoDepleted},
	}
	for i := range promos {
		promos[i].ID = uuid.NewString()
		promos[i].CreatedAt, promos[i].UpdatedAt = ts, ts
	}

	events := []model.Event{
		{Title: "Opening Night Gala: Deadly Vows Premiere", Category: "Premiere", Date: "2025-11-14", Time: "19:30",
			Venue: "Million Dollar Theatre", Featured: true,
			Description: "Join us for the LA premiere of Jared Cohn's latest thriller with red carpet reception and filmmaker Q&A"},
		{Title: "Short Block 1: International Shorts", Category: "Screening", Date: "2025-11-14", Time: "15:30",
			Venue: "Million Dollar Theatre", Description: "A curated selection of short films from emerging international filmmakers"},
		{Title: "Filmmaker Networking Mixer", Category: "Networking", Date: "2025-11-15", Time: "21:00",
			Venue: "Secret Movie Club", Description: "Connect with fellow filmmakers, industry professionals, and film enthusiasts over drinks"},
		{Title: "Documentary Feature: Where Darkness Dwells", Category: "Screening", Date: "2025-11-15", Time: "19:30",
			Venue: "Million Dollar Theatre", Description: "World premiere followed by Q&A with director Michael May"},
		{Title: "Speed Pitching Mini-Market", Category: "Workshop", Date: "2025-11-16", Time: "13:00",
			Venue: "Secret Movie Club", Description: "Selected filmmakers pitch their projects to industry professionals"},
		{Title: "Closing Night Awards Ceremony", Category: "Festival", Date: "2025-11-16", Time: "21:00",
			Venue: "Million Dollar Theatre", Featured: true,
			Description: "Celebrate the best of LAIFF 2025 at our awards ceremony and closing reception"},
	}
	for i := range events {
		events[i].ID = uuid.NewString()
		events[i].Status = model.EventUpcoming
		events[i].CreatedAt, events[i].UpdatedAt = ts, ts
	}

	notifications := []model.Notification{
		{Title: "Tickets Confirmed", Message: `Your tickets for "Deadly Vows" on Nov 14 are confirmed!`, Type: model.NotifyTicket, CreatedAt: ago(2 * time.Hour)},
		{Title: "New Event Added", Message: "Q&A with director Jared Cohn added after the screening.", Type: model.NotifyEvent, CreatedAt: ago(5 * time.Hour)},
		{Title: "Early Bird Discount", Message: "Use code LAIFF25 for 15% off festival passes!", Type: model.NotifyPromo, Read: true, CreatedAt: ago(24 * time.Hour)},
		{Title: "Schedule Update", Message: "Short Block 2 moved to 6:00 PM on Nov 14.", Type: model.NotifySystem, Read: true, CreatedAt: ago(48 * time.Hour)},
	}
	for i := range notifications {
		notifications[i].ID = uuid.NewString()
	}

	broadcasts := []model.Broadcast{
		{Title: "Opening Night Reminder", Message: "Don't forget! LAIFF 2025 kicks off this Friday...", AudienceID: "all",
			AudienceName: "All Members", Delivery: model.DeliveryBoth, Recipients: 156, OpenRate: 68, SentAt: ago(2 * time.Hour)},
		{Title: "Exclusive: Where Darkness Dwells Premiere", Message: "You're invited to an exclusive early screening...", AudienceID: "supporters",
			AudienceName: "Supporters", Delivery: model.DeliveryEmail, Recipients: 42, OpenRate: 82, SentAt: ago(24 * time.Hour)},
		{Title: "Last Chance: Festival Passes on Sale", Message: "Get your weekend pass before they sell out...", AudienceID: "newsletter",
			AudienceName: "Newsletter Subscribers", Delivery: model.DeliveryEmail, Recipients: 312, OpenRate: 45, SentAt: ago(72 * time.Hour)},
	}
	for i := range broadcasts {
		broadcasts[i].ID = uuid.NewString()
	}

	activity := []model.Activity{
		{Action: "New ticket purchase", Detail: "Deadly Vows - 2 tickets", Type: model.ActivityTicket, CreatedAt: ago(5 * time.Minute)},
		{Action: "Film added", Detail: "Where Darkness Dwells", Type: model.ActivityFilm, CreatedAt: ago(time.Hour)},
		{Action: "New member signup", Detail: "Film Club - John D.", Type: model.ActivityMember, CreatedAt: ago(2 * time.Hour)},
		{Action: "Showtime updated", Detail: "Short Block 2 moved to 6 PM", Type: model.ActivitySchedule, CreatedAt: ago(3 * time.Hour)},
		{Action: "Broadcast sent", Detail: "Opening Night Reminder", Type: model.ActivityBroadcast, CreatedAt: ago(24 * time.Hour)},
	}
	for i := range activity {
		activity[i].ID = uuid.NewString()
	}

	inserts := []struct {
		stmt string
		rows any
	}{
		{InsertMovie, movies},
		{InsertShowtime, showtimes},
		{InsertTicketType, tickets},
		{InsertPromoCode, promos},
		{InsertEvent, events},
		{InsertNotification, notifications},
		{InsertBroadcast, broadcasts},
		{InsertActivity, activity},
	}
	for _, in := range inserts {
		if _, err := tx.NamedExecContext(ctx, in.stmt, in.rows); err != nil {
			return false, fmt.Errorf("seed: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return false, err
	}
	return true, nil
}
