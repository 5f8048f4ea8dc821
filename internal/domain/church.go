package domain

import "time"

type Church struct {
	Id   ChurchId
	Name ChurchName
}

// Series is not a stored row: it is a group-by over sermons sharing a series
// name within one church. Date is the earliest sermon date in the group.
type Series struct {
	Name SeriesName
	Date time.Time
}

type Sermon struct {
	Id       SermonId
	ChurchId ChurchId
	Series   SeriesName
	Name     SermonName
	Date     time.Time
}
