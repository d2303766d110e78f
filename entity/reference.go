package entity

type Department struct {
	BaseEntity
	Title       string `json:"title" gorm:"type:varchar(100);not null"`
	Description string `json:"description,omitempty" gorm:"type:text"`
}

type Category struct {
	BaseEntity
	DepartmentID uint   `json:"departmentId" gorm:"index"`
	Title        string `json:"title" gorm:"type:varchar(100);not null"`
}

type SubCategory struct {
	BaseEntity
	CategoryID uint   `json:"categoryId" gorm:"index"`
	Title      string `json:"title" gorm:"type:varchar(100);not null"`
}

type Country struct {
	BaseEntity
	Title string `json:"title" gorm:"type:varchar(100);not null"`
	Code  string `json:"code" gorm:"type:varchar(5)"`
}

func (d *Department) GetTitle() string {
	if d == nil {
		return ""
	}
	return d.Title
}

func (c *Category) GetTitle() string {
	if c == nil {
		return ""
	}
	return c.Title
}

func (s *SubCategory) GetTitle() string {
	if s == nil {
		return ""
	}
	return s.Title
}

func (c *Country) GetTitle() string {
	if c == nil {
		return ""
	}
	return c.Title
}
