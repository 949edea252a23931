package models

// explicit join model with its own id; the unique index keeps pairs duplicate-free
type GenreTitle struct {
	ID      int64 `json:"id" gorm:"primaryKey;autoIncrement"`
	TitleID int64 `json:"title_id" gorm:"not null;uniqueIndex:idx_genre_title_pair"`
	GenreID int64 `json:"genre_id" gorm:"not null;uniqueIndex:idx_genre_title_pair"`
}

func (GenreTitle) TableName() string {
	return "genre_titles"
}
