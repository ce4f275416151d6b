// Package mocks provides hand-written test doubles for the store, generation
// and auth interfaces.
//
// Each mock has a working default (the stores keep data in memory, the
// generator and JWT service return configured values) and exported function
// fields that replace a single method when a test needs a specific failure:
//
//	interviews := mocks.NewMockInterviewStore(existing)
//	interviews.UpdateFn = func(context.Context, *domain.Interview) error {
//		return errors.New("connection reset")
//	}
//
// Mocks record the calls they receive where tests need to assert on them,
// for example MockGenerator.QuestionCalls and MockTransactor.Calls.
package mocks
