package users

const (
	userColumns = `id, subject_id, email, display_name, picture_url, profile_status,
		phone_number, address, bio, created_at, updated_at`

	queryInsertIfAbsent = `
		INSERT INTO users (id, subject_id, email, display_name, picture_url, profile_status)
		VALUES ($1, $2, $3, $4, $5, 'pending')
		ON CONFLICT (subject_id) DO NOTHING
		RETURNING ` + userColumns

	queryFindBySubject = `
		SELECT ` + userColumns + `
		FROM users
		WHERE subject_id = $1
	`

	queryFindByID = `
		SELECT ` + userColumns + `
		FROM users
		WHERE id = $1
	`

	queryLockByID = `
		SELECT ` + userColumns + `
		FROM users
		WHERE id = $1
		FOR UPDATE
	`

	queryUpdateProfile = `
		UPDATE users
		SET phone_number = $1, address = $2, bio = $3, profile_status = $4, updated_at = NOW()
		WHERE id = $5
		RETURNING ` + userColumns

	queryDeleteByID = `
		DELETE FROM users
		WHERE id = $1
	`
)
