package seating

import "testing"

func Test_GridSize(t *testing.T) {
	tests := []struct {
		name         string
		gc           GridConfig
		wantW, wantH float64
	}{
		{
			name:  "default 4x6 singles",
			gc:    GridConfig{Rows: 4, Cols: 6},
			wantW: 6*140 + 5*24,       // 960
			wantH: 4*140 + 3*24 + 180, // 812
		},
		{
			name:  "4x6 pairs",
			gc:    GridConfig{Rows: 4, Cols: 6, PairMode: true},
			wantW: 6*140 + 5*40 + 3*40, // 1160
			wantH: 4*140 + 3*24 + 180,  // 812
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h := GridSize(tt.gc)
			if w != tt.wantW || h != tt.wantH {
				t.Errorf("GridSize() = (%v, %v); want (%v, %v)", w, h, tt.wantW, tt.wantH)
			}
		})
	}
}

func Test_FitScale(t *testing.T) {
	tests := []struct {
		name   string
		vw, vh float64
		gc     GridConfig
		want   float64
	}{
		{name: "large viewport hits cap", vw: 1920, vh: 1080, gc: GridConfig{Rows: 4, Cols: 6}, want: 1.1},
		{name: "laptop viewport", vw: 800, vh: 600, gc: GridConfig{Rows: 4, Cols: 6}, want: 0.59},
		{name: "tiny viewport hits floor", vw: 300, vh: 300, gc: GridConfig{Rows: 4, Cols: 6}, want: 0.5},
		{name: "pair mode widens the chart", vw: 1200, vh: 900, gc: GridConfig{Rows: 4, Cols: 6, PairMode: true}, want: 0.93},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FitScale(tt.vw, tt.vh, tt.gc); got != tt.want {
				t.Errorf("FitScale() = %v; want %v", got, tt.want)
			}
		})
	}
}

func Test_GridConfig_RowOrder(t *testing.T) {
	gc := GridConfig{Rows: 3, Cols: 2}
	if got := gc.RowOrder(); got[0] != 0 || got[1] != 1 || got[2] != 2 {
		t.Errorf("RowOrder() = %v; want [0 1 2]", got)
	}

	gc.ViewFromBack = true
	if got := gc.RowOrder(); got[0] != 2 || got[1] != 1 || got[2] != 0 {
		t.Errorf("RowOrder() reversed = %v; want [2 1 0]", got)
	}
}

func Test_GridConfig_Validate(t *testing.T) {
	gc := GridConfig{Rows: 4, Cols: 6}
	if err := gc.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if gc.ZoomLevel != defaultZoom {
		t.Errorf("ZoomLevel defaulted to %v; want %v", gc.ZoomLevel, defaultZoom)
	}

	bad := GridConfig{Rows: 0, Cols: 6}
	if err := bad.Validate(); err == nil {
		t.Error("Validate() accepted zero rows")
	}
}
