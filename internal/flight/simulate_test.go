package flight_test

import (
	"context"
	"errors"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/pointmass/internal/constants"
	"github.com/san-kum/pointmass/internal/control"
	"github.com/san-kum/pointmass/internal/dynamo"
	"github.com/san-kum/pointmass/internal/flight"
	"github.com/san-kum/pointmass/internal/integrators"
	"github.com/san-kum/pointmass/internal/metrics"
)

var _ = Describe("Simulate", func() {
	var (
		ctx context.Context
		ic  constants.InitialConditions
	)

	BeforeEach(func() {
		ctx = context.Background()
		ic = constants.Default().Initial
	})

	Describe("time grid", func() {
		DescribeTable("produces equal-length series",
			func(t0, tf, dt float64, n int) {
				tr, err := flight.Simulate(ctx, t0, tf, dt, ic, control.LevelFlight())
				Expect(err).NotTo(HaveOccurred())
				Expect(tr.Time).To(HaveLen(n))
				Expect(tr.V).To(HaveLen(n))
				Expect(tr.Gamma).To(HaveLen(n))
				Expect(tr.Psi).To(HaveLen(n))
				Expect(tr.Phi).To(HaveLen(n))
			},
			Entry("ten seconds at 100 Hz", 0.0, 10.0, 0.01, 1000),
			Entry("one second at 10 Hz", 0.0, 1.0, 0.1, 10),
			Entry("offset start", 2.0, 3.0, 0.25, 4),
			Entry("span not a multiple of dt", 0.0, 1.0, 0.3, 4),
			Entry("single sample", 0.0, 0.01, 0.01, 1),
		)

		It("excludes the final time", func() {
			tr, err := flight.Simulate(ctx, 0, 1, 0.1, ic, control.LevelFlight())
			Expect(err).NotTo(HaveOccurred())
			Expect(tr.Time[0]).To(Equal(0.0))
			Expect(tr.Time[tr.Len()-1]).To(BeNumerically("~", 0.9, 1e-12))
		})
	})

	It("seeds index 0 with the initial conditions exactly", func() {
		ic = constants.InitialConditions{V0: 55.5, Gamma0: 0.05, Psi0: 1.2, Phi0: -0.3}
		tr, err := flight.Simulate(ctx, 0, 1, 0.01, ic, control.LevelFlight())
		Expect(err).NotTo(HaveOccurred())
		Expect(tr.V[0]).To(Equal(55.5))
		Expect(tr.Gamma[0]).To(Equal(0.05))
		Expect(tr.Psi[0]).To(Equal(1.2))
		Expect(tr.Phi[0]).To(Equal(-0.3))
	})

	It("holds the steady level flight fixed point exactly", func() {
		tr, err := flight.Simulate(ctx, 0, 10, 0.01, ic, control.LevelFlight())
		Expect(err).NotTo(HaveOccurred())
		Expect(tr.Len()).To(Equal(1000))

		for k := range tr.Time {
			Expect(tr.V[k]).To(Equal(ic.V0))
			Expect(tr.Gamma[k]).To(Equal(0.0))
			Expect(tr.Psi[k]).To(Equal(0.0))
			Expect(tr.Phi[k]).To(Equal(0.0))
		}
	})

	It("integrates a constant roll rate into bank angle", func() {
		r := 0.05
		profile := control.NewConstant(control.Input{Nx: 0, Nz: 1, P: r})
		dt := 0.01

		tr, err := flight.Simulate(ctx, 0, 2, dt, ic, profile)
		Expect(err).NotTo(HaveOccurred())
		for k := range tr.Phi {
			Expect(tr.Phi[k]).To(BeNumerically("~", ic.Phi0+r*float64(k)*dt, 1e-12))
		}
	})

	It("turns toward the bank with heading rate g tan(phi)/v", func() {
		phi := 30 * math.Pi / 180
		ic.Phi0 = phi
		profile := control.NewConstant(control.Input{Nz: 1 / math.Cos(phi)})

		tr, err := flight.Simulate(ctx, 0, 1, 0.01, ic, profile)
		Expect(err).NotTo(HaveOccurred())

		rate := (tr.Psi[1] - tr.Psi[0]) / 0.01
		Expect(rate).To(BeNumerically("~", constants.StandardGravity*math.Tan(phi)/ic.V0, 1e-9))
		Expect(tr.Psi[tr.Len()-1]).To(BeNumerically(">", 0))
	})

	It("follows a time-indexed control sequence", func() {
		seq := make(control.Sequence, 100)
		for k := range seq {
			seq[k] = control.Input{Nz: 1}
		}
		seq[0].Nx = 1

		tr, err := flight.Simulate(ctx, 0, 1, 0.01, ic, seq)
		Expect(err).NotTo(HaveOccurred())
		Expect(tr.V[1]).To(BeNumerically("~", ic.V0+constants.StandardGravity*0.01, 1e-12))
		Expect(tr.V[2]).To(Equal(tr.V[1]))
	})

	It("is deterministic", func() {
		profile := control.NewConstant(control.Input{Nx: 0.05, Nz: 1.1, P: 0.02})
		a, err := flight.Simulate(ctx, 0, 5, 0.01, ic, profile)
		Expect(err).NotTo(HaveOccurred())
		b, err := flight.Simulate(ctx, 0, 5, 0.01, ic, profile)
		Expect(err).NotTo(HaveOccurred())

		Expect(a.Time).To(Equal(b.Time))
		Expect(a.V).To(Equal(b.V))
		Expect(a.Gamma).To(Equal(b.Gamma))
		Expect(a.Psi).To(Equal(b.Psi))
		Expect(a.Phi).To(Equal(b.Phi))
	})

	Describe("invalid time spans", func() {
		DescribeTable("are rejected without a result",
			func(t0, tf, dt float64, param string) {
				tr, err := flight.Simulate(ctx, t0, tf, dt, ic, control.LevelFlight())
				Expect(tr).To(BeNil())
				Expect(errors.Is(err, dynamo.ErrInvalidTimeSpan)).To(BeTrue())

				var tse *dynamo.TimeSpanError
				Expect(errors.As(err, &tse)).To(BeTrue())
				Expect(tse.Param).To(Equal(param))
			},
			Entry("equal bounds", 1.0, 1.0, 0.01, "t_final"),
			Entry("reversed bounds", 2.0, 1.0, 0.01, "t_final"),
			Entry("zero dt", 0.0, 1.0, 0.0, "dt"),
			Entry("negative dt", 0.0, 1.0, -0.01, "dt"),
			Entry("nan dt", 0.0, 1.0, math.NaN(), "dt"),
			Entry("more samples than a run may hold", 0.0, 1e20, 1.0, "dt"),
			Entry("step too small for the span", 0.0, 1e300, 1e-300, "dt"),
		)
	})

	It("rejects a non-positive initial airspeed", func() {
		ic.V0 = 0
		_, err := flight.Simulate(ctx, 0, 1, 0.01, ic, control.LevelFlight())
		Expect(err).To(HaveOccurred())
	})

	It("stops on a cancelled context", func() {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		_, err := flight.Simulate(cctx, 0, 1, 0.01, ic, control.LevelFlight())
		Expect(err).To(MatchError(context.Canceled))
	})

	Describe("Run", func() {
		It("reports metrics and supports other integrators", func() {
			sc := flight.DefaultScenario()
			sc.Integrator = integrators.NewRK4()
			sc.Profile = control.NewConstant(control.Input{Nz: 1, P: 0.1})
			sc.Metrics = []dynamo.Metric{metrics.NewPeakBank()}

			tr, err := flight.Run(ctx, sc)
			Expect(err).NotTo(HaveOccurred())
			Expect(tr.Result.Metrics).To(HaveKey("peak_bank"))
			Expect(tr.Result.Metrics["peak_bank"]).To(BeNumerically("~", 0.1*9.99, 1e-9))
		})

		It("requires a profile", func() {
			sc := flight.DefaultScenario()
			sc.Profile = nil
			_, err := flight.Run(ctx, sc)
			Expect(err).To(HaveOccurred())
		})
	})
})
