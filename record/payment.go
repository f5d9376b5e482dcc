package record

import (
	"io"

	"github.com/lightningnetwork/lnd/tlv"
	"github.com/lightningnetwork/lnsim/msat"
)

// TLV types for a PaymentRecord stream. Numbered densely since this is a
// closed, single-producer format, not a wire protocol that needs room for
// independently evolving extensions.
const (
	typePaymentID        tlv.Type = 0
	typeSource            tlv.Type = 1
	typeDestination        tlv.Type = 2
	typeAmount             tlv.Type = 3
	typeVerdict            tlv.Type = 4
	typeAttemptCount       tlv.Type = 5
	typeTotalFee           tlv.Type = 6
	typeMaxPathLength      tlv.Type = 7
	typeAttempts           tlv.Type = 8
	typeObservationBlob    tlv.Type = 9
	typeAdversarySetHash   tlv.Type = 10
)

// Encode writes p as a single TLV stream.
func (p *PaymentRecord) Encode(w io.Writer) error {
	sourceBytes := []byte(p.Source)
	destBytes := []byte(p.Destination)
	attemptsBytes := encodeAttempts(p.Attempts)
	amount := uint64(p.Amount)
	verdict := uint8(p.Verdict)
	totalFee := uint64(p.TotalFee)
	hash := p.AdversarySetHash
	observation := p.ObservationBlob

	records := []tlv.Record{
		tlv.MakePrimitiveRecord(typePaymentID, &p.PaymentID),
		tlv.MakeDynamicRecord(
			typeSource, &sourceBytes, tlv.SizeVarBytes(&sourceBytes),
			tlv.EVarBytes, tlv.DVarBytes,
		),
		tlv.MakeDynamicRecord(
			typeDestination, &destBytes, tlv.SizeVarBytes(&destBytes),
			tlv.EVarBytes, tlv.DVarBytes,
		),
		tlv.MakePrimitiveRecord(typeAmount, &amount),
		tlv.MakePrimitiveRecord(typeVerdict, &verdict),
		tlv.MakePrimitiveRecord(typeAttemptCount, &p.AttemptCount),
		tlv.MakePrimitiveRecord(typeTotalFee, &totalFee),
		tlv.MakePrimitiveRecord(typeMaxPathLength, &p.MaxPathLength),
		tlv.MakeDynamicRecord(
			typeAttempts, &attemptsBytes, tlv.SizeVarBytes(&attemptsBytes),
			tlv.EVarBytes, tlv.DVarBytes,
		),
		tlv.MakeDynamicRecord(
			typeObservationBlob, &observation, tlv.SizeVarBytes(&observation),
			tlv.EVarBytes, tlv.DVarBytes,
		),
		tlv.MakePrimitiveRecord(typeAdversarySetHash, &hash),
	}

	stream, err := tlv.NewStream(records...)
	if err != nil {
		return err
	}

	return stream.Encode(w)
}

// Decode reads a PaymentRecord previously written by Encode.
func (p *PaymentRecord) Decode(r io.Reader) error {
	var (
		sourceBytes, destBytes   []byte
		attemptsBytes            []byte
		amount, totalFee         uint64
		verdict                  uint8
		hash                     [32]byte
		observation              []byte
	)

	records := []tlv.Record{
		tlv.MakePrimitiveRecord(typePaymentID, &p.PaymentID),
		tlv.MakeDynamicRecord(
			typeSource, &sourceBytes, tlv.SizeVarBytes(&sourceBytes),
			tlv.EVarBytes, tlv.DVarBytes,
		),
		tlv.MakeDynamicRecord(
			typeDestination, &destBytes, tlv.SizeVarBytes(&destBytes),
			tlv.EVarBytes, tlv.DVarBytes,
		),
		tlv.MakePrimitiveRecord(typeAmount, &amount),
		tlv.MakePrimitiveRecord(typeVerdict, &verdict),
		tlv.MakePrimitiveRecord(typeAttemptCount, &p.AttemptCount),
		tlv.MakePrimitiveRecord(typeTotalFee, &totalFee),
		tlv.MakePrimitiveRecord(typeMaxPathLength, &p.MaxPathLength),
		tlv.MakeDynamicRecord(
			typeAttempts, &attemptsBytes, tlv.SizeVarBytes(&attemptsBytes),
			tlv.EVarBytes, tlv.DVarBytes,
		),
		tlv.MakeDynamicRecord(
			typeObservationBlob, &observation, tlv.SizeVarBytes(&observation),
			tlv.EVarBytes, tlv.DVarBytes,
		),
		tlv.MakePrimitiveRecord(typeAdversarySetHash, &hash),
	}

	stream, err := tlv.NewStream(records...)
	if err != nil {
		return err
	}

	if err := stream.Decode(r); err != nil {
		return err
	}

	p.Source = string(sourceBytes)
	p.Destination = string(destBytes)
	p.Amount = msat.MilliSatoshi(amount)
	p.Verdict = Verdict(verdict)
	p.TotalFee = msat.MilliSatoshi(totalFee)
	p.AdversarySetHash = hash
	p.ObservationBlob = observation

	attempts, err := decodeAttempts(attemptsBytes)
	if err != nil {
		return err
	}
	p.Attempts = attempts

	return nil
}
