package interfaces

import "bond-monitor/internal/permission"

type GraphSource interface {
	Load() (*permission.Graph, error)
}
