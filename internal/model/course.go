package model

// CuratedCourse 根据评估结果编排的个性化课程
// swagger:model CuratedCourse
type CuratedCourse struct {
	ID        string         `json:"courseId"`
	UserID    string         `json:"userId"`
	Title     string         `json:"title"`
	Modules   []CourseModule `json:"modules"`
	CreatedAt int64          `json:"createdAt"` // Unix 秒
}

// CourseModule 课程模块，ID 从 1 开始顺序编号，最多 5 个
// swagger:model CourseModule
type CourseModule struct {
	ID          int           `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Topics      []ModuleTopic `json:"topics"` // 每模块最多 3 个
	VideoID     string        `json:"videoId,omitempty"`
	VideoTitle  string        `json:"videoTitle,omitempty"`
}

// ModuleTopic 模块知识点，首模块之外的 Content 延迟生成，允许为空
type ModuleTopic struct {
	ID      int    `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content,omitempty"`
}

// FindModule 按模块ID查找，未找到返回 nil
func (c *CuratedCourse) FindModule(moduleID int) *CourseModule {
	for i := range c.Modules {
		if c.Modules[i].ID == moduleID {
			return &c.Modules[i]
		}
	}
	return nil
}

// Clone 深拷贝。模块内容是原地回填的，锁外持有的读取副本
// 必须连同 Modules/Topics 底层数组一起复制
func (c *CuratedCourse) Clone() *CuratedCourse {
	copied := *c
	copied.Modules = make([]CourseModule, len(c.Modules))
	for i, m := range c.Modules {
		copied.Modules[i] = m
		copied.Modules[i].Topics = append([]ModuleTopic(nil), m.Topics...)
	}
	return &copied
}
