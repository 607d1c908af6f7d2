package framework

// TestLogger receives progress notifications as the test run proceeds. TestInfo carries
// the human-readable values that a test wants to show to the operator.
type TestLogger interface {
	TestStarted(id TestID)
	TestInfo(id TestID, message string)
	TestError(id TestID, err error)
	TestFinished(id TestID, failed bool, debugOutput CapturedOutput)
	TestSkipped(id TestID, reason string)
}

type nullTestLogger struct{}

func (n nullTestLogger) TestStarted(TestID)                        {}
func (n nullTestLogger) TestInfo(TestID, string)                   {}
func (n nullTestLogger) TestError(TestID, error)                   {}
func (n nullTestLogger) TestFinished(TestID, bool, CapturedOutput) {}
func (n nullTestLogger) TestSkipped(TestID, string)                {}
