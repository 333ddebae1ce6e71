// Package memory holds in-process implementations of the repository interfaces.
// They back STORE_DRIVER=memory and the service and controller tests.
package memory

import "github.com/lshigami/quizbank/internal/repository"

var (
	_ repository.QuestionRepository = (*QuestionRepository)(nil)
	_ repository.SubjectRepository  = (*SubjectRepository)(nil)
	_ repository.TestRepository     = (*TestRepository)(nil)
)
