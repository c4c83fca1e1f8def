package content

// contentSchema describes the course content document: a list of users and
// a list of courses with nested modules, quizzes, questions and lessons.
var contentSchema = map[string]any{
	"type":     "object",
	"required": []any{"users", "courses"},
	"properties": map[string]any{
		"users": map[string]any{
			"type":  "array",
			"items": userSchema,
		},
		"courses": map[string]any{
			"type":  "array",
			"items": courseSchema,
		},
	},
}

var userSchema = map[string]any{
	"type":     "object",
	"required": []any{"user_id", "name", "role"},
	"properties": map[string]any{
		"user_id": nonEmptyString,
		"name":    map[string]any{"type": "string"},
		"role":    map[string]any{"type": "string", "enum": []any{"student", "teacher"}},
		"email":   map[string]any{"type": []any{"string", "null"}},
	},
}

var courseSchema = map[string]any{
	"type":     "object",
	"required": []any{"course_id", "title", "instructor_id"},
	"properties": map[string]any{
		"course_id":     nonEmptyString,
		"title":         map[string]any{"type": "string"},
		"instructor_id": map[string]any{"type": "string"},
		"student_ids": map[string]any{
			"type":  "array",
			"items": map[string]any{"type": "string"},
		},
		"modules": map[string]any{
			"type":  "array",
			"items": moduleSchema,
		},
	},
}

var moduleSchema = map[string]any{
	"type":     "object",
	"required": []any{"module_id", "title"},
	"properties": map[string]any{
		"module_id":   nonEmptyString,
		"title":       map[string]any{"type": "string"},
		"description": map[string]any{"type": "string"},
		"quizzes": map[string]any{
			"type":  "array",
			"items": quizSchema,
		},
		"lessons": map[string]any{
			"type":  "array",
			"items": lessonSchema,
		},
	},
}

var quizSchema = map[string]any{
	"type":     "object",
	"required": []any{"quiz_id", "title", "questions"},
	"properties": map[string]any{
		"quiz_id":            nonEmptyString,
		"title":              map[string]any{"type": "string"},
		"graded":             map[string]any{"type": "boolean"},
		"time_limit_minutes": map[string]any{"type": []any{"integer", "null"}, "minimum": 0},
		"questions": map[string]any{
			"type":  "array",
			"items": questionSchema,
		},
	},
}

var questionSchema = map[string]any{
	"type":     "object",
	"required": []any{"question_id", "prompt", "choices", "correct_choice", "skill"},
	"properties": map[string]any{
		"question_id": nonEmptyString,
		"prompt":      map[string]any{"type": "string"},
		"choices": map[string]any{
			"type":     "array",
			"minItems": 1,
			"items":    map[string]any{"type": "string"},
		},
		"correct_choice": map[string]any{"type": "integer", "minimum": 0},
		"skill":          nonEmptyString,
		"difficulty":     map[string]any{"type": "integer", "minimum": 1},
	},
}

var lessonSchema = map[string]any{
	"type":     "object",
	"required": []any{"lesson_id", "title", "skill"},
	"properties": map[string]any{
		"lesson_id":         nonEmptyString,
		"title":             map[string]any{"type": "string"},
		"skill":             nonEmptyString,
		"summary":           map[string]any{"type": "string"},
		"content":           map[string]any{"type": "string"},
		"estimated_minutes": map[string]any{"type": "integer", "minimum": 1},
	},
}

var nonEmptyString = map[string]any{"type": "string", "minLength": 1}
