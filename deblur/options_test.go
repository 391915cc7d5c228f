package deblur

import "testing"

func TestValidateRejectsEvenKS(t *testing.T) {
	o := DefaultOptions()
	o.KS = 8
	if err := o.Validate(); err == nil {
		t.Fatalf("Validate() = nil, want error for even ks")
	}
}

func TestValidateRejectsSmallKS(t *testing.T) {
	o := DefaultOptions()
	o.KS = 1
	if err := o.Validate(); err == nil {
		t.Fatalf("Validate() = nil, want error for ks < 3")
	}
}

func TestValidateAcceptsDefaults(t *testing.T) {
	o := DefaultOptions()
	o.KS = 9
	if err := o.Validate(); err != nil {
		t.Fatalf("Validate() = %v, want nil", err)
	}
}

func TestValidateRejectsLambdaRatioOutOfRange(t *testing.T) {
	o := DefaultOptions()
	o.KS = 9
	o.LambdaRatio = 1.5
	if err := o.Validate(); err == nil {
		t.Fatalf("Validate() = nil, want error for lambda_ratio > 1")
	}
}

func TestValidateRejectsScaleFactorOutOfRange(t *testing.T) {
	o := DefaultOptions()
	o.KS = 9
	o.ScaleFactor = 1
	if err := o.Validate(); err == nil {
		t.Fatalf("Validate() = nil, want error for scale_factor >= 1")
	}
}
