package ports

import "time"

// ActivityObserver receives a tick whenever an operation makes progress.
// Implementations must be safe for concurrent use.
//
//go:generate mockgen -source=activity.go -destination=mocks/mock_activity.go -package=mocks
type ActivityObserver interface {
	Update()
}

// ActivitySensor exposes the time of the last observed progress.
type ActivitySensor interface {
	LastActivity() time.Time
}

// DescribingSensor is an ActivitySensor that can explain a period of inactivity.
type DescribingSensor interface {
	ActivitySensor
	DescribeInactivity(now time.Time) string
}
