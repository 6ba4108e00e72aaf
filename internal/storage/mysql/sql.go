package mysql

const insertRunSQL = `
INSERT INTO runs
  (id, item_id, status, reviews_processed, score_sum, stored_keys)
VALUES
  (?, ?, ?, 0, 0, JSON_ARRAY())
`

// Progress is additive so concurrent review workers can record without
// read-modify-write races.
const recordProgressSQL = `
UPDATE runs SET
  reviews_processed = reviews_processed + 1,
  score_sum         = score_sum + ?,
  stored_keys       = JSON_ARRAY_APPEND(stored_keys, '$', ?),
  updated_at        = CURRENT_TIMESTAMP
WHERE id = ?
`

const completeRunSQL = `
UPDATE runs SET
  status     = 'done',
  result     = ?,
  verdict    = ?,
  updated_at = CURRENT_TIMESTAMP
WHERE id = ?
`

const failRunSQL = `
UPDATE runs SET
  status     = 'failed',
  error      = ?,
  updated_at = CURRENT_TIMESTAMP
WHERE id = ?
`

const getRunSQL = `
SELECT id, item_id, status, reviews_processed, score_sum, result, verdict, error, stored_keys, created_at, updated_at
FROM runs
WHERE id = ?
`

const listRunsSQL = `
SELECT id, item_id, status, reviews_processed, score_sum, result, verdict, error, stored_keys, created_at, updated_at
FROM runs
WHERE item_id = ?
ORDER BY created_at DESC, id DESC
LIMIT ?
`
