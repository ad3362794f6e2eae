// AngelaMos | 2026
// result.go

package core

// Write acknowledgements keep the shape the web client already consumes.

type InsertResult struct {
	Acknowledged bool   `json:"acknowledged"`
	InsertedID   string `json:"insertedId"`
}

type UpdateResult struct {
	Acknowledged  bool  `json:"acknowledged"`
	MatchedCount  int64 `json:"matchedCount"`
	ModifiedCount int64 `json:"modifiedCount"`
}

type DeleteResult struct {
	Acknowledged bool  `json:"acknowledged"`
	DeletedCount int64 `json:"deletedCount"`
}

func Inserted(id string) InsertResult {
	return InsertResult{Acknowledged: true, InsertedID: id}
}

func Updated(rows int64) UpdateResult {
	return UpdateResult{
		Acknowledged:  true,
		MatchedCount:  rows,
		ModifiedCount: rows,
	}
}

func Deleted(rows int64) DeleteResult {
	return DeleteResult{Acknowledged: true, DeletedCount: rows}
}
