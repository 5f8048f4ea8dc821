package domain

type (
	Username = string
	Password = string

	ChurchId   = int64
	ChurchName = string

	SeriesName = string

	SermonId   = int64
	SermonName = string

	ThreadId = int64
	PostId   = int64
)
