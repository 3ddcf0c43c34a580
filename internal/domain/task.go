package domain

// Task is a derived progress view computed from live player, referral and
// streak counts. Nothing about tasks is persisted.
type Task struct {
	ID        int     `json:"id"`
	Name      string  `json:"name"`
	Progress  int64   `json:"progress"`
	Target    int64   `json:"target"`
	Reward    float64 `json:"reward"`
	Completed bool    `json:"completed"`
}
