package util

const (
	StorageLocal = "local"
	StorageMinio = "minio"
)

const (
	SurfaceBackendMemory = "memory"
	SurfaceBackendRedis  = "redis"
	SurfaceBackendMySQL  = "mysql"
)

// 渲染目标尺寸范围（像素）
const (
	MinSurfaceSize = 100
	MaxSurfaceSize = 4096
)
