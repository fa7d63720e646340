package database

// Named insert statements shared by Seed and the repositories.  The
// placeholders bind to the db tags of the model structs.
const (
	InsertMovie = `INSERT INTO festival_movies (id, tmdb_id, title, director, release_year, genre, runtime, synopsis,
		poster_url, rating, price_cents, status, festival_category, notes, created_at, updated_at)
		VALUES (:id, :tmdb_id, :title, :director, :release_year, :genre, :runtime, :synopsis,
		:poster_url, :rating, :price_cents, :status, :festival_category, :notes, :created_at, :updated_at)`

	InsertShowtime = `INSERT INTO showtimes (id, movie_id, movie_title, show_date, show_time, venue, screen,
		capacity, sold, price_category, status, notes, created_at, updated_at)
		VALUES (:id, :movie_id, :movie_title, :show_date, :show_time, :venue, :screen,
		:capacity, :sold, :price_category, :status, :notes, :created_at, :updated_at)`

	InsertTicketType = `INSERT INTO ticket_types (id, name, description, base_price_cents, discount_percent,
		final_price_cents, availability, status, max_per_order, requires_id, created_at, updated_at)
		VALUES (:id, :name, :description, :base_price_cents, :discount_percent,
		:final_price_cents, :availability, :status, :max_per_order, :requires_id, :created_at, :updated_at)`

	InsertPromoCode = `INSERT INTO promo_codes (id, code, discount_type, discount_value, usage_limit, usage_count,
		valid_from, valid_until, status, created_at, updated_at)
		VALUES (:id, :code, :discount_type, :discount_value, :usage_limit, :usage_count,
		:valid_from, :valid_until, :status, :created_at, :updated_at)`

	InsertEvent = `INSERT INTO events (id, title, description, category, event_date, event_time, venue,
		status, featured, created_at, updated_at)
		VALUES (:id, :title, :description, :category, :event_date, :event_time, :venue,
		:status, :featured, :created_at, :updated_at)`

	InsertNotification = `INSERT INTO notifications (id, title, message, notif_type, is_read, created_at)
		VALUES (:id, :title, :message, :notif_type, :is_read, :created_at)`

	InsertBroadcast = `INSERT INTO broadcasts (id, title, message, audience_id, audience_name, delivery,
		recipients, open_rate, sent_at)
		VALUES (:id, :title, :message, :audience_id, :audience_name, :delivery,
		:recipients, :open_rate, :sent_at)`

	InsertActivity = `INSERT INTO activity (id, action, detail, activity_type, created_at)
		VALUES (:id, :action, :detail, :activity_type, :created_at)`

	InsertOrder = `INSERT INTO orders (id, client_id, state, movie_id, movie_title, poster_path, show_date,
		show_time, venue_id, venue_name, adult, senior, student, child, customer_name, customer_email,
		customer_phone, promo_code, subtotal_cents, discount_cents, total_cents, confirmation_code,
		created_at, updated_at)
		VALUES (:id, :client_id, :state, :movie_id, :movie_title, :poster_path, :show_date,
		:show_time, :venue_id, :venue_name, :adult, :senior, :student, :child, :customer_name, :customer_email,
		:customer_phone, :promo_code, :subtotal_cents, :discount_cents, :total_cents, :confirmation_code,
		:created_at, :updated_at)`
)
