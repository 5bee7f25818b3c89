/*
Package hwsim provides a naive hardware simulator and an API to compose basic
components (logic gates, registers, state machines) into more complex ones.

A circuit is a set of wires and a set of components. Each simulation step,
every component reads the current state of its input wires and writes the
next state of its output wires. Once all components have run, the next state
becomes the current one. No component can observe a value written by another
component during the same step, so the update order of components does not
matter and components can be updated concurrently.

A clock cycle lasts a fixed number of steps. Clocked parts update their
registers either at the beginning of a cycle (Circuit.AtTick, the rising edge)
or in its middle (Circuit.AtTock, the falling edge), and drive their outputs
from these registers on every step.

The API is designed to mimic a real hardware description language. As a
result, it relies heavily on closures and can feel a bit awkward when
implementing custom components.
*/
package hwsim
