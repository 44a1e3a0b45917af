package conversationRepository

const (
	queryCreateBooking = `
		INSERT INTO bookings (
			id, customer_id, category, package_key, package_name,
			price, info, status, created_at, updated_at
		) VALUES (
			:id, :customer_id, :category, :package_key, :package_name,
			:price, :info, :status, :created_at, :updated_at
		)
	`

	queryUpdateBookingStatus = `
		UPDATE bookings
		SET status = :status, updated_at = :updated_at
		WHERE id = :id
	`

	queryGetBookingByID = `
		SELECT
			id, customer_id, category, package_key, package_name,
			price, info, status, created_at, updated_at
		FROM bookings
		WHERE id = :id
	`
)
