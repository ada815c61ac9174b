package mysql

const insertFullTourSQL = `
INSERT INTO full_tours
  (id, title, description, image_url, duration, group_size, price, rating, badge, sort_order, featured, active)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

const insertDayTourSQL = `
INSERT INTO day_tours
  (id, title, description, image_url, duration, group_size, price, badge, location, sort_order, active)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

const updateFullTourSQL = `
UPDATE full_tours SET
  title       = ?,
  description = ?,
  image_url   = ?,
  duration    = ?,
  group_size  = ?,
  price       = ?,
  rating      = ?,
  badge       = ?,
  sort_order  = ?,
  featured    = ?,
  active      = ?
WHERE id = ?
`

const updateDayTourSQL = `
UPDATE day_tours SET
  title       = ?,
  description = ?,
  image_url   = ?,
  duration    = ?,
  group_size  = ?,
  price       = ?,
  badge       = ?,
  location    = ?,
  sort_order  = ?,
  active      = ?
WHERE id = ?
`

const fullTourColumns = `
  id, title, description, image_url, duration, group_size, price, rating, badge, sort_order, featured, active, created_at`

const dayTourColumns = `
  id, title, description, image_url, duration, group_size, price, badge, location, sort_order, active, created_at`

const getAllFullToursSQL = `SELECT` + fullTourColumns + `
FROM full_tours
ORDER BY created_at DESC, id DESC`

const getAllDayToursSQL = `SELECT` + dayTourColumns + `
FROM day_tours
ORDER BY created_at DESC, id DESC`

const getFullTourSQL = `SELECT` + fullTourColumns + `
FROM full_tours WHERE id = ?`

const getDayTourSQL = `SELECT` + dayTourColumns + `
FROM day_tours WHERE id = ?`

// Public listings honor the admin-maintained sort priority.
const listPublicFullToursSQL = `SELECT` + fullTourColumns + `
FROM full_tours
WHERE active = 1
ORDER BY sort_order ASC, created_at DESC, id DESC`

const listPublicDayToursSQL = `SELECT` + dayTourColumns + `
FROM day_tours
WHERE active = 1
ORDER BY sort_order ASC, created_at DESC, id DESC`

// Note: `text` is reserved; keep it quoted everywhere.
const insertReviewSQL = "INSERT INTO reviews\n" +
	"  (id, first_name, last_name, country, rating, `text`, approved)\n" +
	"VALUES\n  (?, ?, ?, ?, ?, ?, ?)"

const reviewColumns = "\n  id, first_name, last_name, country, rating, `text`, approved, created_at"

const getAllReviewsSQL = `SELECT` + reviewColumns + `
FROM reviews
ORDER BY created_at DESC, id DESC`

const listApprovedReviewsSQL = `SELECT` + reviewColumns + `
FROM reviews
WHERE approved = 1
ORDER BY created_at DESC, id DESC`

const setReviewApprovedSQL = `UPDATE reviews SET approved = ? WHERE id = ?`
