package transfer

import (
	"testing"

	"github.com/handoff-labs/handoff/pkg/hodb/homodel"
	"github.com/stretchr/testify/assert"
)

func TestComputeStats(t *testing.T) {
	tests := []struct {
		files []homodel.FileTransfer
		want  Stats
		name  string
	}{
		{files: nil, want: Stats{}, name: "no files"},
		{
			files: []homodel.FileTransfer{
				{Status: homodel.FilePending},
				{Status: homodel.FilePending},
			},
			want: Stats{Total: 2, Pending: 2},
			name: "all pending",
		},
		{
			files: []homodel.FileTransfer{
				{Status: homodel.FileCompleted},
				{Status: homodel.FileFailed},
				{Status: homodel.FileTransferring},
				{Status: homodel.FilePending},
				{Status: homodel.FileSkipped},
			},
			want: Stats{Total: 5, Pending: 1, Transferring: 1, Completed: 1, Failed: 1, Skipped: 1},
			name: "one of each",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := ComputeStats(test.files)
			assert.Equal(t, test.want, got)

			// Counts always partition the total.
			sum := got.Pending + got.Transferring + got.Completed + got.Failed + got.Skipped
			assert.Equal(t, got.Total, sum)
		})
	}
}
