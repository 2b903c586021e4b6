package tag

type TagModel struct {
	ID          int64   `gorm:"column:id;primaryKey"`
	Slug        string  `gorm:"column:slug;uniqueIndex;not null"`
	Name        string  `gorm:"column:name;not null"`
	Category    string  `gorm:"column:category;not null"`
	Description *string `gorm:"column:description"`
	IconURL     *string `gorm:"column:icon_url"`
}

func (TagModel) TableName() string { return "public.tags" }
